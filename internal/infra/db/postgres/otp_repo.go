package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/users"
)

type OTPRepository struct {
	db *sql.DB
}

func NewOTPRepository(db *sql.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Save stores a pending challenge
func (r *OTPRepository) Save(ctx context.Context, c *domain.OTPChallenge) error {
	const q = `
INSERT INTO otp_storage (phone_number, otp, created_at, expires_at)
VALUES ($1,$2,$3,$4);
`
	_, err := r.db.ExecContext(ctx, q, stringOrDash(c.PhoneNumber), c.Code, c.CreatedAt, c.ExpiresAt)
	return err
}

// Find returns the newest challenge matching phone + code, nil when absent
func (r *OTPRepository) Find(ctx context.Context, phone, code string) (*domain.OTPChallenge, error) {
	const q = `
SELECT phone_number, otp, created_at, expires_at
FROM otp_storage
WHERE phone_number=$1 AND otp=$2
ORDER BY created_at DESC
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, phone, code)
	var c domain.OTPChallenge
	var created, expires time.Time
	if err := row.Scan(&c.PhoneNumber, &c.Code, &created, &expires); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.CreatedAt = created
	c.ExpiresAt = expires
	return &c, nil
}
