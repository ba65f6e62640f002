package database

import "fmt"

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// creates. Postgres only; other drivers get by on the gorm tag indexes.
func AddIndexes() error {
	if DB.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Sibling-set scans always filter by parent and sort by position
		{"columns", "idx_columns_board_position", "board_id, position"},
		{"tasks", "idx_tasks_column_position", "column_id, position"},
		{"checklist_items", "idx_checklist_items_task_position", "task_id, position"},

		// Membership lookups on every guarded mutation
		{"workspace_members", "idx_workspace_members_user_id", "user_id"},

		// Cascade and aggregation fan-out
		{"comments", "idx_comments_task_id", "task_id"},
		{"task_labels", "idx_task_labels_label_id", "label_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := DB.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := DB.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
