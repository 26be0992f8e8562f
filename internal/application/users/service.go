package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/farmtech/farmtech-api/internal/domain/users"
)

// MockOTP is the fixed code handed out until an SMS gateway is wired in.
// TODO: integrate a real SMS provider (Twilio or MSG91) before launch.
const MockOTP = "123456"

const otpTTL = 5 * time.Minute

// Service implements phone-based registration use-cases.
type Service struct {
	Repo  domain.Repository
	OTP   domain.OTPRepository
	Clock Clock
	Log   *zap.Logger
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

//
// ==== USE CASES ====
//

// RequestOTP issues a challenge for the phone number. The mock code is
// returned to the caller so the MVP flow can be exercised end to end.
func (s *Service) RequestOTP(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	now := s.Clock.Now().UTC()
	c := &domain.OTPChallenge{
		PhoneNumber: phone,
		Code:        MockOTP,
		CreatedAt:   now,
		ExpiresAt:   now.Add(otpTTL),
	}
	if err := s.OTP.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// VerifyResult reports whether the phone number already has a profile.
type VerifyResult struct {
	Status string       `json:"status"` // existing_user | new_user
	User   *domain.User `json:"user,omitempty"`
	Phone  string       `json:"phone_number,omitempty"`
}

// VerifyOTP checks the submitted code and resolves the account status.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error) {
	c, err := s.OTP.Find(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Expired(s.Clock.Now().UTC()) {
		return nil, domain.ErrInvalidOTP
	}

	u, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return &VerifyResult{Status: "existing_user", User: u}, nil
	}
	return &VerifyResult{Status: "new_user", Phone: phone}, nil
}

// Command untuk register
type RegisterCommand struct {
	PhoneNumber string
	Name        string
	Gender      string
	DateOfBirth string
	UserTypes   []string
}

// Register creates a verified profile. One profile per phone number.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	existing, err := s.Repo.GetByPhone(ctx, cmd.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	u := &domain.User{
		ID:          domain.UserID(uuid.New().String()),
		PhoneNumber: cmd.PhoneNumber,
		Name:        cmd.Name,
		Gender:      cmd.Gender,
		DateOfBirth: cmd.DateOfBirth,
		UserTypes:   cmd.UserTypes,
		CreatedAt:   s.Clock.Now().UTC(),
		Verified:    true,
	}
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get ambil 1 user by id
func (s *Service) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
