package models

import "time"

// BlockerInput carries the fields for creating a blocker record.
// A zero ID means the store generates one.
type BlockerInput struct {
	ID              string
	Vendor          string
	Title           string
	Impact          *string
	Ask             *string
	Priority        string
	RaisedAt        *time.Time
	EscalationCount int
	Owner           *string
	Project         *string
}

// ActionItemInput carries the fields for creating an action item record.
type ActionItemInput struct {
	ID              string
	Vendor          string
	Title           string
	Context         *string
	Ask             *string
	Priority        string
	RaisedAt        *time.Time
	EscalationCount int
	Owner           *string
	Project         *string
	DueDate         *time.Time
}

// TopicInput carries the fields for creating a discussion topic record.
type TopicInput struct {
	ID              string
	Vendor          string
	Title           string
	Context         *string
	Ask             *string
	Priority        string
	RaisedAt        *time.Time
	EscalationCount int
	Owner           *string
	Project         *string
	Severity        string
}
