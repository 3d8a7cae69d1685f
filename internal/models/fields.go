package models

// fieldColumns maps logical edit fields to per-table columns. The three
// backing schemas stay untouched; edits address them through this table
// instead of an inheritance hierarchy.
var fieldColumns = map[EntityType]map[string]string{
	EntityBlocker: {
		"title":    "title",
		"context":  "impact",
		"ask":      "ask",
		"priority": "priority",
		"owner":    "owner",
	},
	EntityActionItem: {
		"title":    "title",
		"context":  "context",
		"ask":      "ask",
		"priority": "priority",
		"owner":    "owner",
	},
	EntityTopic: {
		"title":    "title",
		"context":  "context",
		"ask":      "ask",
		"priority": "priority",
		"owner":    "owner",
	},
}

// FieldColumn resolves a logical field name ("context", "ask", ...) to the
// store column for the given entity type. The second result is false when
// the field is not editable on that type.
func FieldColumn(t EntityType, field string) (string, bool) {
	cols, ok := fieldColumns[t]
	if !ok {
		return "", false
	}
	col, ok := cols[field]
	return col, ok
}

// EditableFields lists the logical field names accepted by edit operations.
func EditableFields() []string {
	return []string{"title", "context", "ask", "priority", "owner"}
}
