package queue

import (
	"fmt"
	"strings"

	"github.com/vendorstack/agendaq/internal/models"
)

const missingField = "—"

// ExportSnapshot renders the current local order as a fixed-column text
// table for copy-out. Pure read: one header line, one line per visible item,
// missing optional fields as an em-dash, severity upper-cased.
func (q *Queue) ExportSnapshot() string {
	return RenderTable(q.items)
}

// RenderTable renders any ranked list in the export format.
func RenderTable(items []models.RankedItem) string {
	var b strings.Builder
	b.WriteString("#, Severity, Topic, Context, Ask, Owner\n")
	for i, item := range items {
		b.WriteString(fmt.Sprintf("%d, %s, %s, %s, %s, %s\n",
			i+1,
			severityCell(item.Severity),
			textCell(item.Title),
			optionalCell(item.Context),
			optionalCell(item.Ask),
			optionalCell(item.OwnerID),
		))
	}
	return b.String()
}

func severityCell(s models.Severity) string {
	if s == models.SeverityNone {
		return missingField
	}
	return strings.ToUpper(string(s))
}

func optionalCell(s *string) string {
	if s == nil || *s == "" {
		return missingField
	}
	return textCell(*s)
}

// textCell keeps every item on a single table row.
func textCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
