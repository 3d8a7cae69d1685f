// Package models defines data structures for vendor-facing work items.
package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// EntityType tags the three concrete work-item backings.
type EntityType string

const (
	EntityBlocker    EntityType = "blocker"
	EntityActionItem EntityType = "action_item"
	EntityTopic      EntityType = "discussion_topic"
)

// Table returns the store table name for this entity type.
func (t EntityType) Table() string {
	return string(t)
}

// Priority is one of four ordered brackets, critical highest.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// bracketRank maps priorities to their position in the total order.
// Higher rank means higher bracket.
var bracketRank = map[Priority]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Rank returns the position of p in the priority order, 0 for unknown values.
func (p Priority) Rank() int {
	return bracketRank[p]
}

// Above reports whether p is a strictly higher bracket than other.
func (p Priority) Above(other Priority) bool {
	return p.Rank() > other.Rank()
}

// Below reports whether p is a strictly lower bracket than other.
func (p Priority) Below(other Priority) bool {
	return p.Rank() < other.Rank()
}

// ParsePriority repairs malformed priority values to the medium default.
func ParsePriority(s string) Priority {
	p := Priority(s)
	if _, ok := bracketRank[p]; !ok {
		return PriorityMedium
	}
	return p
}

// Status of a work item. Resolved items never reappear in a ranking.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Severity is a type-specific classification used as an additive scoring
// input. Distinct from priority: blockers derive it from age, action items
// from due-date overrun, discussion topics store it explicitly.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityNew      Severity = "new"
	SeverityNone     Severity = ""
)

// WorkItem is the normalized shape the scoring engine and assembler see.
// Derived fields (AgeDays, Severity, DaysOverdue) are computed by the source
// adapters at read time and never cached.
type WorkItem struct {
	EntityType      EntityType
	EntityID        string
	VendorID        string
	Title           string
	Context         *string
	Ask             *string
	Priority        Priority
	Status          Status
	FirstRaisedAt   time.Time
	EscalationCount int
	OwnerID         *string
	ProjectID       *string
	DueDate         *time.Time

	AgeDays     int
	Severity    Severity
	DaysOverdue int
}

// RankedItem is a work item with its score and 1-based dense rank.
type RankedItem struct {
	WorkItem
	Score float64
	Rank  int
}

// Vendor is an external organization tracked as a stakeholder.
type Vendor struct {
	ID   surrealmodels.RecordID `json:"id"`
	Name string                 `json:"name"`
}
