package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/soil"
)

type SoilAnalysisRepository struct {
	db *sql.DB
}

func NewSoilAnalysisRepository(db *sql.DB) *SoilAnalysisRepository {
	return &SoilAnalysisRepository{db: db}
}

// Save inserts an analysis record. Records are append-only; the upsert
// clause only guards against an accidental id replay.
func (r *SoilAnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO soil_analyses
  (id, user_id, analysis_result, source, image_url, location_json, created_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  analysis_result=VALUES(analysis_result), source=VALUES(source), image_url=VALUES(image_url);
`
	userID := stringOrDash(a.UserID)
	result := a.Result
	if strings.TrimSpace(result) == "" {
		result = "-"
	}
	source := string(a.Source)
	if source == "" {
		source = string(domain.SourceLive)
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, userID, result, source, a.ImageURL, jsonObject(a.Location), createdAt)
	return err
}

// Get by ID
func (r *SoilAnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, user_id, analysis_result, source, image_url, location_json, created_at
FROM soil_analyses
WHERE id=? LIMIT 1;
`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// Paginate returns a page of a user's analyses ordered by created_at desc
func (r *SoilAnalysisRepository) Paginate(ctx context.Context, userID string, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, user_id, analysis_result, source, image_url, location_json, created_at
FROM soil_analyses
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnalysis(row *sql.Row) (*domain.Analysis, error) {
	var a domain.Analysis
	var imageURL, location sql.NullString
	var created time.Time
	if err := row.Scan(&a.ID, &a.UserID, &a.Result, &a.Source, &imageURL, &location, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	a.ImageURL = imageURL.String
	a.Location = scanObject(location)
	a.CreatedAt = created
	return &a, nil
}

func scanAnalysisRow(rows *sql.Rows) (*domain.Analysis, error) {
	var a domain.Analysis
	var imageURL, location sql.NullString
	var created time.Time
	if err := rows.Scan(&a.ID, &a.UserID, &a.Result, &a.Source, &imageURL, &location, &created); err != nil {
		return nil, err
	}
	a.ImageURL = imageURL.String
	a.Location = scanObject(location)
	a.CreatedAt = created
	return &a, nil
}
