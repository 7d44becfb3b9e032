package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
)

// SQLiteAggregateRepo implements AggregateRepo using a SQLite database.
type SQLiteAggregateRepo struct {
	db db.DBTX
}

// NewSQLiteAggregateRepo creates a new SQLiteAggregateRepo.
func NewSQLiteAggregateRepo(conn db.DBTX) *SQLiteAggregateRepo {
	return &SQLiteAggregateRepo{db: conn}
}

func (r *SQLiteAggregateRepo) Upsert(ctx context.Context, a *domain.DailyAggregate) error {
	query := `INSERT OR REPLACE INTO daily_aggregates
		(user_id, day, focus_min, completion_rate, satisfaction)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.UserID,
		a.Day,
		a.FocusMin,
		a.CompletionRate,
		nullableIntToValue(a.Satisfaction),
	)
	if err != nil {
		return fmt.Errorf("upserting daily aggregate: %w", err)
	}
	return nil
}

// ListRecent returns up to days aggregates ordered newest first.
func (r *SQLiteAggregateRepo) ListRecent(ctx context.Context, userID string, days int) ([]domain.DailyAggregate, error) {
	query := `SELECT user_id, day, focus_min, completion_rate, satisfaction
		FROM daily_aggregates WHERE user_id = ?
		ORDER BY day DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, days)
	if err != nil {
		return nil, fmt.Errorf("listing daily aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []domain.DailyAggregate
	for rows.Next() {
		var a domain.DailyAggregate
		var satisfaction sql.NullInt64
		if err := rows.Scan(&a.UserID, &a.Day, &a.FocusMin, &a.CompletionRate, &satisfaction); err != nil {
			return nil, fmt.Errorf("scanning daily aggregate: %w", err)
		}
		if satisfaction.Valid {
			v := int(satisfaction.Int64)
			a.Satisfaction = &v
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}
