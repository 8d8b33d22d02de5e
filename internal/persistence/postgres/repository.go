package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/observability"
)

const summaryColumns = `summary_id, tenant_id, user_id, workout_type, readings, training_type, duration_hours, distance_km, mean_speed_kmh, calories, message, source, recorded_at`

// Repository provides Postgres-backed persistence for workout summaries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create persists the summary.
func (r *Repository) Create(ctx context.Context, summary domain.Summary) error {
	err := r.withTenant(ctx, summary.TenantID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO workout_summaries (`+summaryColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			summary.ID,
			summary.TenantID,
			summary.UserID,
			summary.WorkoutType,
			summary.Data,
			summary.TrainingType,
			summary.DurationHours,
			summary.DistanceKm,
			summary.MeanSpeedKmh,
			summary.Calories,
			summary.Message,
			summary.Source,
			summary.RecordedAt,
		)
		return err
	})
	if err != nil {
		return err
	}
	observability.RecordSummaryPersisted(summary.RecordedAt)
	return nil
}

// Get retrieves a summary by ID. A missing row yields nil without error.
func (r *Repository) Get(ctx context.Context, tenantID, summaryID string) (*domain.Summary, error) {
	var found *domain.Summary
	err := r.withTenant(ctx, tenantID, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+summaryColumns+` FROM workout_summaries WHERE tenant_id=$1 AND summary_id=$2`, tenantID, summaryID)
		summary, err := scanSummary(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		found = &summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByUser returns summaries for a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, tenantID, userID string, cursor *domain.Cursor, limit int) ([]domain.Summary, *domain.Cursor, error) {
	args := []interface{}{tenantID, userID, limit}
	query := `SELECT ` + summaryColumns + ` FROM workout_summaries WHERE tenant_id=$1 AND user_id=$2`

	if cursor != nil {
		query += ` AND (recorded_at, summary_id) < ($4, $5)`
		args = append(args, cursor.RecordedAt, cursor.ID)
	}

	query += ` ORDER BY recorded_at DESC, summary_id DESC LIMIT $3`

	results := make([]domain.Summary, 0, limit)
	err := r.withTenant(ctx, tenantID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			summary, err := scanSummary(rows)
			if err != nil {
				return err
			}
			results = append(results, summary)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if limit > 0 && len(results) == limit {
		last := results[len(results)-1]
		next = &domain.Cursor{RecordedAt: last.RecordedAt, ID: last.ID}
	}
	return results, next, nil
}

// withTenant runs fn in a transaction scoped to the tenant for row-level security.
func (r *Repository) withTenant(ctx context.Context, tenantID string, fn func(pgx.Tx) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT set_config('app.tenant_id', $1, true)", tenantID); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanSummary(row pgx.Row) (domain.Summary, error) {
	var s domain.Summary
	err := row.Scan(&s.ID, &s.TenantID, &s.UserID, &s.WorkoutType, &s.Data, &s.TrainingType,
		&s.DurationHours, &s.DistanceKm, &s.MeanSpeedKmh, &s.Calories, &s.Message, &s.Source, &s.RecordedAt)
	return s, err
}
