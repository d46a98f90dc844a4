//go:build integration

package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esbresolver/internal/platform/database"
	"esbresolver/migrations"
	"esbresolver/pkg/testutil/containers"
)

func TestPoolAgainstPostgres(t *testing.T) {
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()

	pool, err := database.New(ctx, database.DefaultConfig(pg.DSN))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, pool.Health(ctx))

	// Container already ran the migrations; a second pass must be a no-op.
	require.NoError(t, database.Migrate(ctx, pool.DB(), migrations.FS))

	var count int
	require.NoError(t, pool.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM rule_sets").Scan(&count))
	assert.GreaterOrEqual(t, count, 0)
}

func TestNewWithoutURL(t *testing.T) {
	pool, err := database.New(context.Background(), database.DefaultConfig(""))
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.Error(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
}
