// Package agenda turns the three stored work-item shapes into one scored,
// ranked meeting agenda.
package agenda

import (
	"context"
	"time"

	"github.com/vendorstack/agendaq/internal/models"
)

// Store is the read surface the source adapters need. *db.Client satisfies it.
type Store interface {
	QueryOpenBlockers(ctx context.Context, vendorID string) ([]models.Blocker, error)
	QueryOpenActionItems(ctx context.Context, vendorID string) ([]models.ActionItem, error)
	QueryOpenTopics(ctx context.Context, vendorID string) ([]models.DiscussionTopic, error)
}

// Source is a read-only projection over one stored record type. Derived
// fields are computed from the passed instant so two reads at different
// times may legitimately disagree on ages.
type Source interface {
	OpenItems(ctx context.Context, vendorID string, now time.Time) ([]models.WorkItem, error)
}

// Sources returns the three adapters in their fixed merge order:
// blockers, action items, discussion topics.
func Sources(store Store) []Source {
	return []Source{
		blockerSource{store},
		actionItemSource{store},
		topicSource{store},
	}
}

type blockerSource struct{ store Store }

func (s blockerSource) OpenItems(ctx context.Context, vendorID string, now time.Time) ([]models.WorkItem, error) {
	records, err := s.store.QueryOpenBlockers(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	items := make([]models.WorkItem, 0, len(records))
	for _, b := range records {
		items = append(items, FromBlocker(b, now))
	}
	return items, nil
}

type actionItemSource struct{ store Store }

func (s actionItemSource) OpenItems(ctx context.Context, vendorID string, now time.Time) ([]models.WorkItem, error) {
	records, err := s.store.QueryOpenActionItems(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	items := make([]models.WorkItem, 0, len(records))
	for _, a := range records {
		items = append(items, FromActionItem(a, now))
	}
	return items, nil
}

type topicSource struct{ store Store }

func (s topicSource) OpenItems(ctx context.Context, vendorID string, now time.Time) ([]models.WorkItem, error) {
	records, err := s.store.QueryOpenTopics(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	items := make([]models.WorkItem, 0, len(records))
	for _, t := range records {
		items = append(items, FromTopic(t, now))
	}
	return items, nil
}

// FromBlocker normalizes a stored blocker. Severity comes from age bands:
// anything open longer than three weeks is critical, longer than a week high,
// otherwise new.
func FromBlocker(b models.Blocker, now time.Time) models.WorkItem {
	age := ageDays(now, b.RaisedAt)
	return models.WorkItem{
		EntityType:      models.EntityBlocker,
		EntityID:        models.MustRecordIDString(b.ID),
		VendorID:        b.Vendor,
		Title:           b.Title,
		Context:         b.Impact,
		Ask:             b.Ask,
		Priority:        models.ParsePriority(b.Priority),
		Status:          models.Status(b.Status),
		FirstRaisedAt:   b.RaisedAt,
		EscalationCount: b.EscalationCount,
		OwnerID:         b.Owner,
		ProjectID:       b.Project,
		AgeDays:         age,
		Severity:        blockerSeverity(age),
	}
}

// FromActionItem normalizes a stored action item. Severity comes from
// due-date overrun bands; items without a due date carry no severity.
func FromActionItem(a models.ActionItem, now time.Time) models.WorkItem {
	age := ageDays(now, a.RaisedAt)
	overdue := 0
	if a.DueDate != nil {
		overdue = wholeDays(now.Sub(*a.DueDate))
	}
	return models.WorkItem{
		EntityType:      models.EntityActionItem,
		EntityID:        models.MustRecordIDString(a.ID),
		VendorID:        a.Vendor,
		Title:           a.Title,
		Context:         a.Context,
		Ask:             a.Ask,
		Priority:        models.ParsePriority(a.Priority),
		Status:          models.Status(a.Status),
		FirstRaisedAt:   a.RaisedAt,
		EscalationCount: a.EscalationCount,
		OwnerID:         a.Owner,
		ProjectID:       a.Project,
		DueDate:         a.DueDate,
		AgeDays:         age,
		Severity:        actionSeverity(a.DueDate, now),
		DaysOverdue:     max(overdue, 0),
	}
}

// FromTopic normalizes a stored discussion topic. Severity is the stored
// explicit value, not derived.
func FromTopic(t models.DiscussionTopic, now time.Time) models.WorkItem {
	severity := models.SeverityNone
	if t.Severity != nil {
		severity = models.Severity(*t.Severity)
	}
	return models.WorkItem{
		EntityType:      models.EntityTopic,
		EntityID:        models.MustRecordIDString(t.ID),
		VendorID:        t.Vendor,
		Title:           t.Title,
		Context:         t.Context,
		Ask:             t.Ask,
		Priority:        models.ParsePriority(t.Priority),
		Status:          models.Status(t.Status),
		FirstRaisedAt:   t.RaisedAt,
		EscalationCount: t.EscalationCount,
		OwnerID:         t.Owner,
		ProjectID:       t.Project,
		AgeDays:         ageDays(now, t.RaisedAt),
		Severity:        severity,
	}
}

func blockerSeverity(age int) models.Severity {
	switch {
	case age > 21:
		return models.SeverityCritical
	case age > 7:
		return models.SeverityHigh
	default:
		return models.SeverityNew
	}
}

func actionSeverity(due *time.Time, now time.Time) models.Severity {
	if due == nil {
		return models.SeverityNone
	}
	overdue := wholeDays(now.Sub(*due))
	switch {
	case overdue > 14:
		return models.SeverityCritical
	case overdue >= 1:
		return models.SeverityHigh
	case overdue >= -3:
		// Due within the next three days.
		return models.SeverityNew
	default:
		return models.SeverityNone
	}
}

// ageDays returns whole days since raisedAt. A zero or future timestamp
// repairs to zero so one malformed record cannot distort the ranking.
func ageDays(now, raisedAt time.Time) int {
	if raisedAt.IsZero() {
		return 0
	}
	return max(wholeDays(now.Sub(raisedAt)), 0)
}

func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}
