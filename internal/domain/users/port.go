package users

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id UserID) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
}

// OTPRepository stores pending challenges. Lookups match phone + code.
type OTPRepository interface {
	Save(ctx context.Context, c *OTPChallenge) error
	Find(ctx context.Context, phone, code string) (*OTPChallenge, error)
}
