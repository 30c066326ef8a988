package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tida-sports/AcademyBotBack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AcademyRepository reads academies out of the denormalized academy_master
// table, where every booking row repeats the academy columns. All reads
// collapse those duplicates into one logical academy per
// (name, latitude, longitude) group.
type AcademyRepository struct {
	db DBTX
}

func NewAcademyRepository(db DBTX) *AcademyRepository {
	return &AcademyRepository{db: db}
}

func (r *AcademyRepository) ListDistinct(ctx context.Context) ([]models.Academy, error) {
	query := `
		SELECT academy_name, COALESCE(MIN(address), ''), latitude, longitude
		FROM academy_master
		GROUP BY academy_name, latitude, longitude
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	academies := make([]models.Academy, 0)
	for rows.Next() {
		var academy models.Academy
		if err := rows.Scan(
			&academy.Name,
			&academy.Address,
			&academy.Latitude,
			&academy.Longitude,
		); err != nil {
			return nil, err
		}
		academies = append(academies, academy)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return academies, nil
}

func (r *AcademyRepository) FindByName(ctx context.Context, fragment string) (*models.Academy, error) {
	query := `
		SELECT academy_name, COALESCE(address, ''), latitude, longitude
		FROM academy_master
		WHERE academy_name ILIKE '%' || $1 || '%'
		ORDER BY academy_name, address
		LIMIT 1
	`

	var academy models.Academy
	err := r.db.QueryRow(ctx, query, fragment).Scan(
		&academy.Name,
		&academy.Address,
		&academy.Latitude,
		&academy.Longitude,
	)
	if err != nil {
		return nil, err
	}
	return &academy, nil
}

func (r *AcademyRepository) CountDistinct(ctx context.Context) (int, error) {
	query := `SELECT COUNT(DISTINCT academy_name) FROM academy_master`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
