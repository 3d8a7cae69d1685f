// Package db provides SurrealDB query functions for vendor work items.
package db

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"

	"github.com/vendorstack/agendaq/internal/models"
)

// editableColumns guards dynamic SET clauses. Only columns reachable through
// the logical field mapping are accepted.
var editableColumns = map[string]bool{
	"title":    true,
	"context":  true,
	"impact":   true,
	"ask":      true,
	"priority": true,
	"owner":    true,
}

// QueryOpenBlockers returns the vendor's open blockers in stored order.
func (c *Client) QueryOpenBlockers(ctx context.Context, vendorID string) ([]models.Blocker, error) {
	defer c.timed("open_blockers")()

	results, err := surrealdb.Query[[]models.Blocker](ctx, c.db, `
		SELECT * FROM blocker
		WHERE vendor = $vendor AND status = 'open'
		ORDER BY raised_at ASC
	`, map[string]any{"vendor": vendorID})
	if err != nil {
		return nil, fmt.Errorf("open blockers: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Blocker{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryOpenActionItems returns the vendor's open action items in stored order.
func (c *Client) QueryOpenActionItems(ctx context.Context, vendorID string) ([]models.ActionItem, error) {
	defer c.timed("open_action_items")()

	results, err := surrealdb.Query[[]models.ActionItem](ctx, c.db, `
		SELECT * FROM action_item
		WHERE vendor = $vendor AND status = 'open'
		ORDER BY raised_at ASC
	`, map[string]any{"vendor": vendorID})
	if err != nil {
		return nil, fmt.Errorf("open action items: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.ActionItem{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryOpenTopics returns the vendor's open discussion topics in stored order.
func (c *Client) QueryOpenTopics(ctx context.Context, vendorID string) ([]models.DiscussionTopic, error) {
	defer c.timed("open_topics")()

	results, err := surrealdb.Query[[]models.DiscussionTopic](ctx, c.db, `
		SELECT * FROM discussion_topic
		WHERE vendor = $vendor AND status = 'open'
		ORDER BY raised_at ASC
	`, map[string]any{"vendor": vendorID})
	if err != nil {
		return nil, fmt.Errorf("open topics: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.DiscussionTopic{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryEscalate increments the escalation count and, when newPriority is
// non-nil, promotes the priority bracket in the same statement.
func (c *Client) QueryEscalate(ctx context.Context, entityType models.EntityType, id string, newPriority *models.Priority) error {
	defer c.timed("escalate")()

	sql := fmt.Sprintf(`
		UPDATE type::record("%s", $id) SET escalation_count += 1
	`, entityType.Table())
	vars := map[string]any{"id": id}
	if newPriority != nil {
		sql = fmt.Sprintf(`
			UPDATE type::record("%s", $id) SET
				escalation_count += 1,
				priority = $priority
		`, entityType.Table())
		vars["priority"] = string(*newPriority)
	}

	if _, err := surrealdb.Query[any](ctx, c.db, sql, vars); err != nil {
		return fmt.Errorf("escalate %s: %w", entityType, wrapQueryError(err))
	}
	return nil
}

// QuerySetPriority sets the priority bracket only. Used by de-escalation,
// which never touches the escalation count.
func (c *Client) QuerySetPriority(ctx context.Context, entityType models.EntityType, id string, priority models.Priority) error {
	defer c.timed("set_priority")()

	sql := fmt.Sprintf(`
		UPDATE type::record("%s", $id) SET priority = $priority
	`, entityType.Table())

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":       id,
		"priority": string(priority),
	})
	if err != nil {
		return fmt.Errorf("set priority %s: %w", entityType, wrapQueryError(err))
	}
	return nil
}

// QueryResolve marks the record resolved with a resolution timestamp.
// Idempotent: resolving an already-resolved record reissues the same state.
func (c *Client) QueryResolve(ctx context.Context, entityType models.EntityType, id string) error {
	defer c.timed("resolve")()

	sql := fmt.Sprintf(`
		UPDATE type::record("%s", $id) SET
			status = 'resolved',
			resolved_at = time::now()
	`, entityType.Table())

	if _, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("resolve %s: %w", entityType, wrapQueryError(err))
	}
	return nil
}

// QueryDeleteItem permanently removes the record. Returns the deleted count
// (0 if not found - idempotent).
func (c *Client) QueryDeleteItem(ctx context.Context, entityType models.EntityType, id string) (int, error) {
	defer c.timed("delete_item")()

	sql := fmt.Sprintf(`DELETE type::record("%s", $id) RETURN BEFORE`, entityType.Table())

	results, err := surrealdb.Query[[]map[string]any](ctx, c.db, sql, map[string]any{"id": id})
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", entityType, wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return 0, nil
	}
	return len((*results)[0].Result), nil
}

// QueryCreateTopic inserts a new open discussion topic with default priority
// medium and severity "new". The id is a collision-resistant uuid, so two
// concurrent creations cannot collide the way a read-count-then-insert
// display-id scheme can.
func (c *Client) QueryCreateTopic(ctx context.Context, vendorID, title string, topicContext, ask *string) (*models.DiscussionTopic, error) {
	defer c.timed("create_topic")()

	id := uuid.New().String()

	sql := `
		CREATE type::record("discussion_topic", $id) SET
			vendor = $vendor,
			title = $title,
			context = $context,
			ask = $ask,
			priority = 'medium',
			status = 'open',
			raised_at = time::now(),
			escalation_count = 0,
			severity = 'new'
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.DiscussionTopic](ctx, c.db, sql, map[string]any{
		"id":      id,
		"vendor":  vendorID,
		"title":   title,
		"context": topicContext,
		"ask":     ask,
	})
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create topic: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// QueryUpdateFields updates free-text and/or priority columns on exactly one
// record. Column names must come through the logical field mapping; anything
// else is rejected before reaching the store.
func (c *Client) QueryUpdateFields(ctx context.Context, entityType models.EntityType, id string, cols map[string]any) error {
	defer c.timed("update_fields")()

	if len(cols) == 0 {
		return nil
	}

	names := make([]string, 0, len(cols))
	for name := range cols {
		if !editableColumns[name] {
			return fmt.Errorf("update fields: column %q not editable", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	vars := map[string]any{"id": id}
	for _, name := range names {
		assignments = append(assignments, fmt.Sprintf("%s = $%s", name, name))
		vars[name] = cols[name]
	}

	sql := fmt.Sprintf(`UPDATE type::record("%s", $id) SET %s`,
		entityType.Table(), strings.Join(assignments, ", "))

	if _, err := surrealdb.Query[any](ctx, c.db, sql, vars); err != nil {
		return fmt.Errorf("update fields %s: %w", entityType, wrapQueryError(err))
	}
	return nil
}

// QueryUpsertVendor creates or renames a vendor.
func (c *Client) QueryUpsertVendor(ctx context.Context, id, name string) error {
	sql := `UPSERT type::record("vendor", $id) SET name = $name`

	if _, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{"id": id, "name": name}); err != nil {
		return fmt.Errorf("upsert vendor: %w", wrapQueryError(err))
	}
	return nil
}

// QueryListVendors returns all known vendors ordered by name.
func (c *Client) QueryListVendors(ctx context.Context) ([]models.Vendor, error) {
	results, err := surrealdb.Query[[]models.Vendor](ctx, c.db, `
		SELECT * FROM vendor ORDER BY name ASC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Vendor{}, nil
	}
	return (*results)[0].Result, nil
}

// CreateBlocker inserts a blocker record. Used by seeding.
func (c *Client) CreateBlocker(ctx context.Context, b models.BlockerInput) (*models.Blocker, error) {
	id := b.ID
	if id == "" {
		id = uuid.New().String()
	}

	sql := `
		CREATE type::record("blocker", $id) SET
			vendor = $vendor,
			title = $title,
			impact = $impact,
			ask = $ask,
			priority = $priority,
			status = 'open',
			raised_at = $raised_at,
			escalation_count = $escalations,
			owner = $owner,
			project = $project
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.Blocker](ctx, c.db, sql, map[string]any{
		"id":          id,
		"vendor":      b.Vendor,
		"title":       b.Title,
		"impact":      b.Impact,
		"ask":         b.Ask,
		"priority":    string(models.ParsePriority(b.Priority)),
		"raised_at":   raisedAtOrNow(b.RaisedAt),
		"escalations": b.EscalationCount,
		"owner":       b.Owner,
		"project":     b.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("create blocker: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create blocker: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// CreateActionItem inserts an action item record. Used by seeding.
func (c *Client) CreateActionItem(ctx context.Context, a models.ActionItemInput) (*models.ActionItem, error) {
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}

	sql := `
		CREATE type::record("action_item", $id) SET
			vendor = $vendor,
			title = $title,
			context = $context,
			ask = $ask,
			priority = $priority,
			status = 'open',
			raised_at = $raised_at,
			escalation_count = $escalations,
			owner = $owner,
			project = $project,
			due_date = $due_date
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.ActionItem](ctx, c.db, sql, map[string]any{
		"id":          id,
		"vendor":      a.Vendor,
		"title":       a.Title,
		"context":     a.Context,
		"ask":         a.Ask,
		"priority":    string(models.ParsePriority(a.Priority)),
		"raised_at":   raisedAtOrNow(a.RaisedAt),
		"escalations": a.EscalationCount,
		"owner":       a.Owner,
		"project":     a.Project,
		"due_date":    a.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create action item: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create action item: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// CreateTopic inserts a discussion topic with explicit fields. Used by
// seeding; interactive creation goes through QueryCreateTopic.
func (c *Client) CreateTopic(ctx context.Context, t models.TopicInput) (*models.DiscussionTopic, error) {
	id := t.ID
	if id == "" {
		id = uuid.New().String()
	}

	severity := t.Severity
	if severity == "" {
		severity = string(models.SeverityNew)
	}

	sql := `
		CREATE type::record("discussion_topic", $id) SET
			vendor = $vendor,
			title = $title,
			context = $context,
			ask = $ask,
			priority = $priority,
			status = 'open',
			raised_at = $raised_at,
			escalation_count = $escalations,
			owner = $owner,
			project = $project,
			severity = $severity
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.DiscussionTopic](ctx, c.db, sql, map[string]any{
		"id":          id,
		"vendor":      t.Vendor,
		"title":       t.Title,
		"context":     t.Context,
		"ask":         t.Ask,
		"priority":    string(models.ParsePriority(t.Priority)),
		"raised_at":   raisedAtOrNow(t.RaisedAt),
		"escalations": t.EscalationCount,
		"owner":       t.Owner,
		"project":     t.Project,
		"severity":    severity,
	})
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create topic: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

func raisedAtOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now()
	}
	return *t
}
