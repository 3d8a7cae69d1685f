package models

import "testing"

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Priority
	}{
		{"critical", "critical", PriorityCritical},
		{"high", "high", PriorityHigh},
		{"medium", "medium", PriorityMedium},
		{"low", "low", PriorityLow},
		{"empty defaults to medium", "", PriorityMedium},
		{"unknown defaults to medium", "urgent", PriorityMedium},
		{"case sensitive", "High", PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePriority(tt.in); got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPriorityOrdering(t *testing.T) {
	order := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

	for i, lower := range order {
		for _, higher := range order[i+1:] {
			if !higher.Above(lower) {
				t.Errorf("%q should be above %q", higher, lower)
			}
			if !lower.Below(higher) {
				t.Errorf("%q should be below %q", lower, higher)
			}
		}
		if lower.Above(lower) || lower.Below(lower) {
			t.Errorf("%q should not order against itself", lower)
		}
	}

	if Priority("bogus").Rank() != 0 {
		t.Errorf("unknown priority should rank 0")
	}
}

func TestFieldColumn(t *testing.T) {
	tests := []struct {
		entityType EntityType
		field      string
		wantCol    string
		wantOK     bool
	}{
		{EntityBlocker, "context", "impact", true},
		{EntityBlocker, "title", "title", true},
		{EntityActionItem, "context", "context", true},
		{EntityTopic, "ask", "ask", true},
		{EntityTopic, "priority", "priority", true},
		{EntityBlocker, "due_date", "", false},
		{EntityTopic, "bogus", "", false},
	}

	for _, tt := range tests {
		col, ok := FieldColumn(tt.entityType, tt.field)
		if col != tt.wantCol || ok != tt.wantOK {
			t.Errorf("FieldColumn(%q, %q) = (%q, %v), want (%q, %v)",
				tt.entityType, tt.field, col, ok, tt.wantCol, tt.wantOK)
		}
	}
}
