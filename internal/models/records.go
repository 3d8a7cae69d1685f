package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Blocker is a stored issue that blocks vendor-facing work.
// Severity is derived from age at read time, never stored.
type Blocker struct {
	ID              surrealmodels.RecordID `json:"id"`
	Vendor          string                 `json:"vendor"`
	Title           string                 `json:"title"`
	Impact          *string                `json:"impact,omitempty"`
	Ask             *string                `json:"ask,omitempty"`
	Priority        string                 `json:"priority"`
	Status          string                 `json:"status"`
	RaisedAt        time.Time              `json:"raised_at"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
	EscalationCount int                    `json:"escalation_count"`
	Owner           *string                `json:"owner,omitempty"`
	Project         *string                `json:"project,omitempty"`
}

// ActionItem is a stored pending commitment with an optional due date.
type ActionItem struct {
	ID              surrealmodels.RecordID `json:"id"`
	Vendor          string                 `json:"vendor"`
	Title           string                 `json:"title"`
	Context         *string                `json:"context,omitempty"`
	Ask             *string                `json:"ask,omitempty"`
	Priority        string                 `json:"priority"`
	Status          string                 `json:"status"`
	RaisedAt        time.Time              `json:"raised_at"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
	EscalationCount int                    `json:"escalation_count"`
	Owner           *string                `json:"owner,omitempty"`
	Project         *string                `json:"project,omitempty"`
	DueDate         *time.Time             `json:"due_date,omitempty"`
}

// DiscussionTopic is a stored ad-hoc agenda topic with an explicit severity.
type DiscussionTopic struct {
	ID              surrealmodels.RecordID `json:"id"`
	Vendor          string                 `json:"vendor"`
	Title           string                 `json:"title"`
	Context         *string                `json:"context,omitempty"`
	Ask             *string                `json:"ask,omitempty"`
	Priority        string                 `json:"priority"`
	Status          string                 `json:"status"`
	RaisedAt        time.Time              `json:"raised_at"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
	EscalationCount int                    `json:"escalation_count"`
	Owner           *string                `json:"owner,omitempty"`
	Project         *string                `json:"project,omitempty"`
	Severity        *string                `json:"severity,omitempty"`
}
