package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// SQLiteEnergyRepo implements EnergyRepo using a SQLite database.
type SQLiteEnergyRepo struct {
	db db.DBTX
}

// NewSQLiteEnergyRepo creates a new SQLiteEnergyRepo.
func NewSQLiteEnergyRepo(conn db.DBTX) *SQLiteEnergyRepo {
	return &SQLiteEnergyRepo{db: conn}
}

func (r *SQLiteEnergyRepo) Append(ctx context.Context, s *domain.EnergySample) error {
	level := domain.ClampInt(s.Level, domain.MinEnergyLevel, domain.MaxEnergyLevel)
	query := `INSERT INTO energy_samples (id, user_id, recorded_at, level) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.RecordedAt.UTC().Format(time.RFC3339),
		level,
	)
	if err != nil {
		return fmt.Errorf("inserting energy sample: %w", err)
	}
	return nil
}

func (r *SQLiteEnergyRepo) ListByUser(ctx context.Context, userID string) ([]domain.EnergySample, error) {
	query := `SELECT id, user_id, recorded_at, level
		FROM energy_samples WHERE user_id = ? ORDER BY recorded_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing energy samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.EnergySample
	for rows.Next() {
		var s domain.EnergySample
		var recordedAt string
		if err := rows.Scan(&s.ID, &s.UserID, &recordedAt, &s.Level); err != nil {
			return nil, fmt.Errorf("scanning energy sample: %w", err)
		}
		s.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
