//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/ftracker/internal/domain"
)

func TestRepositoryStoresAndPagesSummaries(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t, ctx)

	tenantID := uuid.NewString()
	userID := uuid.NewString()
	base := time.Now().UTC().Truncate(time.Microsecond)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		summary := domain.Summary{
			ID:            uuid.NewString(),
			TenantID:      tenantID,
			UserID:        userID,
			WorkoutType:   "RUN",
			Data:          []float64{15000, 1, 75},
			TrainingType:  "Running",
			DurationHours: 1,
			DistanceKm:    9.75,
			MeanSpeedKmh:  9.75,
			Calories:      797.805,
			Message:       "Training type: Running;",
			Source:        "integration-test",
			RecordedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, summary))
		ids = append(ids, summary.ID)
	}

	stored, err := repo.Get(ctx, tenantID, ids[0])
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, []float64{15000, 1, 75}, stored.Data)
	require.InDelta(t, 797.805, stored.Calories, 1e-9)

	other, err := repo.Get(ctx, uuid.NewString(), ids[0])
	require.NoError(t, err)
	require.Nil(t, other, "summaries must stay within their tenant")

	page, next, err := repo.ListByUser(ctx, tenantID, userID, nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[2], page[0].ID)
	require.NotNil(t, next)

	rest, next, err := repo.ListByUser(ctx, tenantID, userID, next, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, ids[0], rest[0].ID)
	require.Nil(t, next)
}

func newRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("fitness"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	contents, err := os.ReadFile(resolvePath(t, "../../../db/migrations/0001_init.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(contents))
	require.NoError(t, err)

	return NewRepository(pool)
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
