package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	SetDB(db)
}

// Runs the same startup sequence the server does: Migrate then AddIndexes
// against the package-level handle.
func TestMigrateAndAddIndexes(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, Migrate())
	require.NoError(t, AddIndexes())

	for _, table := range []string{
		"users", "workspaces", "workspace_members", "boards",
		"columns", "tasks", "labels", "task_labels",
		"checklist_items", "comments",
	} {
		assert.True(t, GetDB().Migrator().HasTable(table), "missing table %s", table)
	}
}
