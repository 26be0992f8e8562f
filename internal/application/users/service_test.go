package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/farmtech/farmtech-api/internal/domain/users"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type fakeUserRepo struct {
	byPhone map[string]*domain.User
	byID    map[domain.UserID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byPhone: map[string]*domain.User{},
		byID:    map[domain.UserID]*domain.User{},
	}
}

func (r *fakeUserRepo) Save(_ context.Context, u *domain.User) error {
	r.byPhone[u.PhoneNumber] = u
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.byPhone[phone], nil
}

type fakeOTPRepo struct {
	saved []*domain.OTPChallenge
}

func (r *fakeOTPRepo) Save(_ context.Context, c *domain.OTPChallenge) error {
	r.saved = append(r.saved, c)
	return nil
}

func (r *fakeOTPRepo) Find(_ context.Context, phone, code string) (*domain.OTPChallenge, error) {
	for i := len(r.saved) - 1; i >= 0; i-- {
		c := r.saved[i]
		if c.PhoneNumber == phone && c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func newUserService(now time.Time) (*Service, *fakeUserRepo, *fakeOTPRepo) {
	users := newFakeUserRepo()
	otps := &fakeOTPRepo{}
	return &Service{Repo: users, OTP: otps, Clock: fixedClock{t: now}}, users, otps
}

func TestRequestOTP(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, otps := newUserService(now)

	c, err := svc.RequestOTP(context.Background(), "+919876543210")
	require.NoError(t, err)

	assert.Equal(t, MockOTP, c.Code)
	assert.Equal(t, "+919876543210", c.PhoneNumber)
	assert.Equal(t, now.Add(5*time.Minute), c.ExpiresAt)
	assert.Len(t, otps.saved, 1)
}

func TestVerifyOTP(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("new user", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newUserService(now)
		_, err := svc.RequestOTP(context.Background(), "+911111111111")
		require.NoError(t, err)

		res, err := svc.VerifyOTP(context.Background(), "+911111111111", MockOTP)
		require.NoError(t, err)
		assert.Equal(t, "new_user", res.Status)
		assert.Equal(t, "+911111111111", res.Phone)
		assert.Nil(t, res.User)
	})

	t.Run("existing user", func(t *testing.T) {
		t.Parallel()
		svc, users, _ := newUserService(now)
		existing := &domain.User{ID: "u-1", PhoneNumber: "+912222222222", Name: "Asha"}
		require.NoError(t, users.Save(context.Background(), existing))
		_, err := svc.RequestOTP(context.Background(), "+912222222222")
		require.NoError(t, err)

		res, err := svc.VerifyOTP(context.Background(), "+912222222222", MockOTP)
		require.NoError(t, err)
		assert.Equal(t, "existing_user", res.Status)
		require.NotNil(t, res.User)
		assert.Equal(t, "Asha", res.User.Name)
	})

	t.Run("wrong code", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newUserService(now)
		_, err := svc.RequestOTP(context.Background(), "+913333333333")
		require.NoError(t, err)

		_, err = svc.VerifyOTP(context.Background(), "+913333333333", "000000")
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	})

	t.Run("expired code", func(t *testing.T) {
		t.Parallel()
		svc, _, otps := newUserService(now)
		otps.saved = append(otps.saved, &domain.OTPChallenge{
			PhoneNumber: "+914444444444",
			Code:        MockOTP,
			CreatedAt:   now.Add(-10 * time.Minute),
			ExpiresAt:   now.Add(-5 * time.Minute),
		})

		_, err := svc.VerifyOTP(context.Background(), "+914444444444", MockOTP)
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newUserService(now)

	cmd := RegisterCommand{
		PhoneNumber: "+915555555555",
		Name:        "Ravi",
		Gender:      "male",
		DateOfBirth: "1990-02-11",
		UserTypes:   []string{"farmer", "transporter"},
	}

	u, err := svc.Register(context.Background(), cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.Verified)
	assert.Equal(t, now, u.CreatedAt)
	assert.Equal(t, []string{"farmer", "transporter"}, u.UserTypes)

	// one profile per phone number
	_, err = svc.Register(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", got.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
