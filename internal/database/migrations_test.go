package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	var ups, downs int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	require.Equal(t, 3, ups)
	require.Equal(t, ups, downs)

	progress, err := fs.ReadFile(migrationsFS, "migrations/000003_create_user_progress_table.up.sql")
	require.NoError(t, err)
	sql := string(progress)
	require.Contains(t, sql, "UNIQUE (user_id, roadmap_id)")
	require.Contains(t, sql, "UNIQUE (user_id, material_id)")
	require.Contains(t, sql, "ck_user_progress_item_type")

	learning, err := fs.ReadFile(migrationsFS, "migrations/000002_create_learning_tables.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(learning), "uq_material_scrap UNIQUE (user_id, material_id)")
	require.Contains(t, string(learning), "ON DELETE CASCADE")
}
