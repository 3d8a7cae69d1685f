package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorstack/agendaq/internal/models"
)

func ranked(id string, entityType models.EntityType, priority models.Priority, escalations int) models.RankedItem {
	return models.RankedItem{
		WorkItem: models.WorkItem{
			EntityType:      entityType,
			EntityID:        id,
			VendorID:        "acme",
			Title:           "item " + id,
			Priority:        priority,
			Status:          models.StatusOpen,
			EscalationCount: escalations,
		},
	}
}

func key(id string, entityType models.EntityType) ItemKey {
	return ItemKey{Type: entityType, ID: id}
}

func ids(q *Queue) []string {
	items := q.Items()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.EntityID
	}
	return out
}

func TestEscalateSwapsWithPredecessor(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
		ranked("b", models.EntityTopic, models.PriorityHigh, 0),
		ranked("c", models.EntityTopic, models.PriorityHigh, 0),
	})

	write, moved := q.Escalate(key("b", models.EntityTopic))
	require.True(t, moved)
	require.NotNil(t, write)

	assert.Equal(t, []string{"b", "a", "c"}, ids(q))
	assert.Equal(t, WriteEscalate, write.Kind)
	// Same bracket as the predecessor: no priority change to persist.
	assert.False(t, write.PriorityChanged)

	b, _ := q.Item(0)
	assert.Equal(t, 1, b.EscalationCount)
	assert.Equal(t, models.PriorityHigh, b.Priority)
}

func TestEscalateAdoptsHigherBracket(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityBlocker, models.PriorityCritical, 0),
		ranked("b", models.EntityTopic, models.PriorityMedium, 0),
	})

	write, moved := q.Escalate(key("b", models.EntityTopic))
	require.True(t, moved)
	require.NotNil(t, write)

	assert.True(t, write.PriorityChanged)
	assert.Equal(t, models.PriorityCritical, write.Priority)

	b, _ := q.Item(0)
	assert.Equal(t, models.PriorityCritical, b.Priority)
	assert.Equal(t, 1, b.EscalationCount, "exactly one increment per escalation")
}

func TestEscalateNeverAdoptsLowerBracket(t *testing.T) {
	// Scores can order a low item above a high one; swapping up past it
	// must not demote.
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityLow, 3),
		ranked("b", models.EntityTopic, models.PriorityHigh, 0),
	})

	write, moved := q.Escalate(key("b", models.EntityTopic))
	require.True(t, moved)
	require.NotNil(t, write)
	assert.False(t, write.PriorityChanged)

	b, _ := q.Item(0)
	assert.Equal(t, models.PriorityHigh, b.Priority)
}

func TestEscalateTopItemIsFullNoOp(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 2),
		ranked("b", models.EntityTopic, models.PriorityLow, 0),
	})

	write, moved := q.Escalate(key("a", models.EntityTopic))
	assert.Nil(t, write)
	assert.False(t, moved)

	a, _ := q.Item(0)
	assert.Equal(t, 2, a.EscalationCount, "no increment without a swap")
	assert.Equal(t, []string{"a", "b"}, ids(q))
}

func TestEscalateStaleKeyIsNoOp(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
	})

	write, moved := q.Escalate(key("gone", models.EntityTopic))
	assert.Nil(t, write)
	assert.False(t, moved)

	// Same id under a different entity type is a different item.
	write, moved = q.Escalate(key("a", models.EntityBlocker))
	assert.Nil(t, write)
	assert.False(t, moved)
}

func TestDeescalateSwapsWithSuccessor(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 1),
		ranked("b", models.EntityTopic, models.PriorityHigh, 0),
	})

	write, moved := q.Deescalate(key("a", models.EntityTopic))
	require.True(t, moved)
	// Same bracket below: nothing to persist.
	assert.Nil(t, write)
	assert.Equal(t, []string{"b", "a"}, ids(q))

	a, _ := q.Item(1)
	assert.Equal(t, 1, a.EscalationCount, "de-escalation never touches the count")
}

func TestDeescalateLowersBracket(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityCritical, 2),
		ranked("b", models.EntityTopic, models.PriorityLow, 0),
	})

	write, moved := q.Deescalate(key("a", models.EntityTopic))
	require.True(t, moved)
	require.NotNil(t, write)

	assert.Equal(t, WritePriority, write.Kind)
	assert.Equal(t, models.PriorityLow, write.Priority)

	a, _ := q.Item(1)
	assert.Equal(t, models.PriorityLow, a.Priority)
	assert.Equal(t, 2, a.EscalationCount)
}

func TestDeescalateBottomItemIsNoOp(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
		ranked("b", models.EntityTopic, models.PriorityLow, 0),
	})

	write, moved := q.Deescalate(key("b", models.EntityTopic))
	assert.Nil(t, write)
	assert.False(t, moved)
	assert.Equal(t, []string{"a", "b"}, ids(q))
}

func TestEscalateDeescalateAsymmetry(t *testing.T) {
	// Escalate across a bracket, then de-escalate back: order and bracket
	// return, the count does not.
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
		ranked("b", models.EntityTopic, models.PriorityMedium, 0),
	})

	_, moved := q.Escalate(key("b", models.EntityTopic))
	require.True(t, moved)
	_, moved = q.Deescalate(key("b", models.EntityTopic))
	require.True(t, moved)

	assert.Equal(t, []string{"a", "b"}, ids(q))
	b, _ := q.Item(1)
	assert.Equal(t, 1, b.EscalationCount)
	// The successor on the way down was high, the same bracket b adopted,
	// so the promotion sticks.
	assert.Equal(t, models.PriorityHigh, b.Priority)
}

func TestResolveRemovesExactlyOne(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
		ranked("b", models.EntityBlocker, models.PriorityHigh, 0),
		ranked("c", models.EntityTopic, models.PriorityLow, 0),
	})

	write := q.Resolve(key("b", models.EntityBlocker))
	require.NotNil(t, write)
	assert.Equal(t, WriteResolve, write.Kind)

	assert.Equal(t, []string{"a", "c"}, ids(q))
	a, _ := q.Item(0)
	c, _ := q.Item(1)
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 2, c.Rank)

	// Stale after removal.
	assert.Nil(t, q.Resolve(key("b", models.EntityBlocker)))
}

func TestDeleteRemovesLocally(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
	})

	write := q.Delete(key("a", models.EntityTopic))
	require.NotNil(t, write)
	assert.Equal(t, WriteDelete, write.Kind)
	assert.Equal(t, 0, q.Len())

	assert.Nil(t, q.Delete(key("a", models.EntityTopic)))
}

func TestEditAppliesLocallyAndMapsFields(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityBlocker, models.PriorityHigh, 2),
	})
	k := key("a", models.EntityBlocker)

	write := q.Edit(k, map[string]string{
		"title":    "new title",
		"context":  "new impact",
		"priority": "low",
		"bogus":    "dropped",
	})
	require.NotNil(t, write)
	assert.Equal(t, WriteEdit, write.Kind)
	assert.Equal(t, map[string]string{
		"title":    "new title",
		"context":  "new impact",
		"priority": "low",
	}, write.Fields)

	a, _ := q.Item(0)
	assert.Equal(t, "new title", a.Title)
	require.NotNil(t, a.Context)
	assert.Equal(t, "new impact", *a.Context)
	assert.Equal(t, models.PriorityLow, a.Priority)
	assert.Equal(t, 2, a.EscalationCount, "edit never touches the count")
}

func TestEditStaleOrEmptyIsNil(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
	})

	assert.Nil(t, q.Edit(key("gone", models.EntityTopic), map[string]string{"title": "x"}))
	assert.Nil(t, q.Edit(key("a", models.EntityTopic), nil))
	assert.Nil(t, q.Edit(key("a", models.EntityTopic), map[string]string{"bogus": "x"}))
}

func TestReplaceResetsToFetchedOrder(t *testing.T) {
	q := New([]models.RankedItem{
		ranked("a", models.EntityTopic, models.PriorityHigh, 0),
	})
	_ = q.Resolve(key("a", models.EntityTopic))

	q.Replace([]models.RankedItem{
		ranked("x", models.EntityTopic, models.PriorityHigh, 0),
		ranked("y", models.EntityTopic, models.PriorityLow, 0),
	})

	assert.Equal(t, []string{"x", "y"}, ids(q))
	x, _ := q.Item(0)
	y, _ := q.Item(1)
	assert.Equal(t, 1, x.Rank)
	assert.Equal(t, 2, y.Rank)
}

// The canonical walkthrough: the ranked order is action item B, topic C,
// blocker A. Escalating A swaps it above the critical topic and promotes it.
func TestEscalateWalkthrough(t *testing.T) {
	b := ranked("B", models.EntityActionItem, models.PriorityMedium, 1)
	c := ranked("C", models.EntityTopic, models.PriorityCritical, 0)
	a := ranked("A", models.EntityBlocker, models.PriorityHigh, 0)

	q := New([]models.RankedItem{b, c, a})

	write, moved := q.Escalate(key("A", models.EntityBlocker))
	require.True(t, moved)
	require.NotNil(t, write)

	assert.Equal(t, []string{"B", "A", "C"}, ids(q))
	assert.True(t, write.PriorityChanged)
	assert.Equal(t, models.PriorityCritical, write.Priority)

	promoted, _ := q.Item(1)
	assert.Equal(t, models.PriorityCritical, promoted.Priority)
	assert.Equal(t, 1, promoted.EscalationCount)
}
