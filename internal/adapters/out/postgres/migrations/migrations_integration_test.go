package migrations_test

import (
	"context"
	"testing"

	"orderdesk/internal/adapters/out/postgres/migrations"
	"orderdesk/internal/adapters/out/postgres/pgtest"

	"github.com/stretchr/testify/require"
)

func TestMigrations_DownAndUpAgain(t *testing.T) {
	ctx := context.Background()

	// Given a database already migrated up
	database, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Terminate(context.Background()) })

	version, dirty, err := migrations.Version(database.DSN)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	// Up is idempotent
	require.NoError(t, migrations.Up(database.DSN))

	// When
	require.NoError(t, migrations.Down(database.DSN))

	// Then
	var tables int64
	require.NoError(t, database.DB.Raw(
		"SELECT count(*) FROM information_schema.tables WHERE table_name IN ('orders', 'order_items', 'actors', 'sessions')",
	).Scan(&tables).Error)
	require.Zero(t, tables)

	require.NoError(t, migrations.Up(database.DSN))
}
