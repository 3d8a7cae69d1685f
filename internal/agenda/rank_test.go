package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorstack/agendaq/internal/models"
)

// fakeSource serves a fixed slice, ignoring vendor and instant.
type fakeSource struct {
	items []models.WorkItem
	err   error
}

func (s fakeSource) OpenItems(_ context.Context, _ string, _ time.Time) ([]models.WorkItem, error) {
	return s.items, s.err
}

func openItem(id string, priority models.Priority, age int) models.WorkItem {
	return models.WorkItem{
		EntityType: models.EntityTopic,
		EntityID:   id,
		VendorID:   "acme",
		Title:      id,
		Priority:   priority,
		Status:     models.StatusOpen,
		AgeDays:    age,
	}
}

func TestRankDescendingDenseRanks(t *testing.T) {
	src := fakeSource{items: []models.WorkItem{
		openItem("low", models.PriorityLow, 0),
		openItem("critical", models.PriorityCritical, 0),
		openItem("medium", models.PriorityMedium, 0),
		openItem("high", models.PriorityHigh, 0),
	}}

	ranked, err := NewAssemblerFromSources(src).Rank(context.Background(), "acme", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	for i, item := range ranked {
		assert.Equal(t, i+1, item.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Score, item.Score)
		}
	}
	assert.Equal(t, "critical", ranked[0].EntityID)
	assert.Equal(t, "low", ranked[3].EntityID)
}

func TestRankStableOnTies(t *testing.T) {
	// Same score everywhere: input order must survive.
	first := fakeSource{items: []models.WorkItem{
		openItem("a", models.PriorityMedium, 1),
		openItem("b", models.PriorityMedium, 1),
	}}
	second := fakeSource{items: []models.WorkItem{
		openItem("c", models.PriorityMedium, 1),
	}}

	ranked, err := NewAssemblerFromSources(first, second).Rank(context.Background(), "acme", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].EntityID)
	assert.Equal(t, "b", ranked[1].EntityID)
	assert.Equal(t, "c", ranked[2].EntityID)
}

func TestRankSkipsNonOpenItems(t *testing.T) {
	resolved := openItem("resolved", models.PriorityCritical, 0)
	resolved.Status = models.StatusResolved

	src := fakeSource{items: []models.WorkItem{
		resolved,
		openItem("open", models.PriorityLow, 0),
	}}

	ranked, err := NewAssemblerFromSources(src).Rank(context.Background(), "acme", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "open", ranked[0].EntityID)
}

func TestRankTruncatesToLimit(t *testing.T) {
	var items []models.WorkItem
	for i := 0; i < 30; i++ {
		items = append(items, openItem(string(rune('a'+i)), models.PriorityMedium, i))
	}
	src := fakeSource{items: items}

	ranked, err := NewAssemblerFromSources(src).Rank(context.Background(), "acme", 5)
	require.NoError(t, err)
	require.Len(t, ranked, 5)
	assert.Equal(t, 5, ranked[4].Rank)

	// Zero limit falls back to the default.
	ranked, err = NewAssemblerFromSources(src).Rank(context.Background(), "acme", 0)
	require.NoError(t, err)
	assert.Len(t, ranked, DefaultLimit)
}

// Three open items: A high ten days old, B high three days old with two
// escalations, C critical and fresh. Scores 95, 111, 100 rank them B, C, A.
func TestRankThreeItemExample(t *testing.T) {
	a := openItem("A", models.PriorityHigh, 10)
	b := openItem("B", models.PriorityHigh, 3)
	b.EscalationCount = 2
	c := openItem("C", models.PriorityCritical, 0)

	ranked, err := NewAssemblerFromSources(fakeSource{items: []models.WorkItem{a, b, c}}).
		Rank(context.Background(), "acme", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "B", ranked[0].EntityID)
	assert.Equal(t, float64(111), ranked[0].Score)
	assert.Equal(t, "C", ranked[1].EntityID)
	assert.Equal(t, float64(100), ranked[1].Score)
	assert.Equal(t, "A", ranked[2].EntityID)
	assert.Equal(t, float64(95), ranked[2].Score)
}

func TestRankEmptyIsNotAnError(t *testing.T) {
	ranked, err := NewAssemblerFromSources(fakeSource{}).Rank(context.Background(), "acme", 0)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankPropagatesSourceErrors(t *testing.T) {
	boom := errors.New("store unavailable")
	srcs := []Source{
		fakeSource{items: []models.WorkItem{openItem("a", models.PriorityHigh, 0)}},
		fakeSource{err: boom},
	}

	_, err := NewAssemblerFromSources(srcs...).Rank(context.Background(), "acme", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
