package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a user profile
func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users
  (id, phone_number, name, gender, date_of_birth, user_types_json, location_json, created_at, verified)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), gender=VALUES(gender), date_of_birth=VALUES(date_of_birth),
  user_types_json=VALUES(user_types_json), location_json=VALUES(location_json), verified=VALUES(verified);
`
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		u.ID, stringOrDash(u.PhoneNumber), u.Name, u.Gender, u.DateOfBirth,
		jsonArray(u.UserTypes), jsonObject(u.Location), createdAt, u.Verified)
	return err
}

// GetByID returns nil when no profile exists
func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	const q = `
SELECT id, phone_number, name, gender, date_of_birth, user_types_json, location_json, created_at, verified
FROM users WHERE id=? LIMIT 1;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetByPhone returns nil when no profile exists
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const q = `
SELECT id, phone_number, name, gender, date_of_birth, user_types_json, location_json, created_at, verified
FROM users WHERE phone_number=? LIMIT 1;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, phone))
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var types, location sql.NullString
	var created time.Time
	if err := row.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.Gender, &u.DateOfBirth,
		&types, &location, &created, &u.Verified); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.UserTypes = scanArray(types)
	u.Location = scanObject(location)
	u.CreatedAt = created
	return &u, nil
}
