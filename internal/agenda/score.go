package agenda

import (
	"github.com/vendorstack/agendaq/internal/models"
)

// Scoring weights. Age and escalations are linear; the overdue bonus is
// capped so days-overdue alone cannot outrank a bracket difference plus a
// modest escalation history.
const (
	ageWeight        = 2
	escalationWeight = 15
	overduePerDay    = 2
	overdueCap       = 60
)

var priorityBase = map[models.Priority]float64{
	models.PriorityCritical: 100,
	models.PriorityHigh:     75,
	models.PriorityMedium:   50,
	models.PriorityLow:      25,
}

var severityBonus = map[models.Severity]float64{
	models.SeverityCritical: 50,
	models.SeverityHigh:     30,
	models.SeverityNew:      10,
}

// Score computes the agenda score for one normalized item:
//
//	score = base(priority) + age_days*2 + escalation_count*15 + bonus
//
// where bonus is the severity bonus, except for action items with an
// overrun due date, whose urgency is overdue-based: min(2*days_overdue, 60)
// replaces the severity bonus there.
//
// Deterministic for fixed inputs at a fixed instant; values drift between
// calls only because ages advance. Malformed priorities repair to medium and
// negative ages to zero so a single bad record never aborts a ranking.
func Score(item models.WorkItem) float64 {
	score := priorityBase[models.ParsePriority(string(item.Priority))]
	score += float64(max(item.AgeDays, 0)) * ageWeight
	score += float64(max(item.EscalationCount, 0)) * escalationWeight

	if item.EntityType == models.EntityActionItem && item.DaysOverdue > 0 {
		score += min(float64(item.DaysOverdue)*overduePerDay, overdueCap)
	} else {
		score += severityBonus[item.Severity]
	}
	return score
}
