// Package queue holds the ranked list for one interactive session and
// executes the escalation state machine over it.
//
// The controller owns synchronous local-display state only: every mutation
// reorders the in-memory list immediately and returns a Write descriptor for
// the caller to persist asynchronously. Persisted state becomes authoritative
// again only on the next full assembler fetch.
package queue

import (
	"github.com/vendorstack/agendaq/internal/models"
)

// ItemKey identifies exactly one record across the three backing tables.
type ItemKey struct {
	Type models.EntityType
	ID   string
}

// KeyOf returns the key for a ranked item.
func KeyOf(item models.RankedItem) ItemKey {
	return ItemKey{Type: item.EntityType, ID: item.EntityID}
}

// WriteKind names the persistence operation a Write describes.
type WriteKind int

const (
	// WriteEscalate increments escalation_count and, when PriorityChanged,
	// sets the new priority in the same statement.
	WriteEscalate WriteKind = iota + 1
	// WritePriority sets priority only (de-escalation across a bracket).
	WritePriority
	// WriteResolve sets status=resolved with a resolution timestamp.
	WriteResolve
	// WriteDelete removes the record permanently.
	WriteDelete
	// WriteEdit updates free-text and/or priority fields.
	WriteEdit
)

// Write describes one fire-and-forget store mutation. Failures are neither
// retried nor rolled back locally.
type Write struct {
	Kind            WriteKind
	Key             ItemKey
	Priority        models.Priority
	PriorityChanged bool
	Fields          map[string]string
}

// Queue is the in-memory ordered list. All methods are synchronous and
// single-threaded; operations on keys no longer present are silent no-ops.
type Queue struct {
	items []models.RankedItem
}

// New builds a queue over a freshly ranked list.
func New(items []models.RankedItem) *Queue {
	q := &Queue{}
	q.Replace(items)
	return q
}

// Replace swaps in a fresh full fetch, the only path back to a fully
// store-confirmed order.
func (q *Queue) Replace(items []models.RankedItem) {
	q.items = make([]models.RankedItem, len(items))
	copy(q.items, items)
	q.renumber()
}

// Items returns a copy of the current local order.
func (q *Queue) Items() []models.RankedItem {
	out := make([]models.RankedItem, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of locally visible items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Item returns the item at a 0-based position.
func (q *Queue) Item(i int) (models.RankedItem, bool) {
	if i < 0 || i >= len(q.items) {
		return models.RankedItem{}, false
	}
	return q.items[i], true
}

// Escalate swaps the item with its immediate predecessor. If the predecessor
// sits in a strictly higher priority bracket the item adopts that bracket,
// never more than one step up. The escalation count always increments when a
// swap happens; it is monotonic and de-escalation never undoes it.
//
// Returns the write to persist and whether the local list changed. Escalating
// the top item or a stale key changes nothing.
func (q *Queue) Escalate(key ItemKey) (*Write, bool) {
	idx := q.indexOf(key)
	if idx <= 0 {
		return nil, false
	}

	pred := q.items[idx-1]
	item := &q.items[idx]
	write := &Write{Kind: WriteEscalate, Key: key}

	if pred.Priority.Above(item.Priority) {
		item.Priority = pred.Priority
		write.Priority = pred.Priority
		write.PriorityChanged = true
	}
	item.EscalationCount++

	q.items[idx-1], q.items[idx] = q.items[idx], q.items[idx-1]
	q.renumber()
	return write, true
}

// Deescalate swaps the item with its immediate successor, lowering its
// priority to the successor's strictly lower bracket when crossing one.
// The escalation count is never touched. No-op on the last item or a stale
// key. The returned write is nil when nothing needs persisting.
func (q *Queue) Deescalate(key ItemKey) (*Write, bool) {
	idx := q.indexOf(key)
	if idx < 0 || idx >= len(q.items)-1 {
		return nil, false
	}

	succ := q.items[idx+1]
	item := &q.items[idx]
	var write *Write

	if succ.Priority.Below(item.Priority) {
		item.Priority = succ.Priority
		write = &Write{
			Kind:            WritePriority,
			Key:             key,
			Priority:        succ.Priority,
			PriorityChanged: true,
		}
	}

	q.items[idx], q.items[idx+1] = q.items[idx+1], q.items[idx]
	q.renumber()
	return write, true
}

// Resolve removes the item from the local list and returns the resolve
// write. Other items keep their relative order; only displayed positions
// shift. Nil for stale keys.
func (q *Queue) Resolve(key ItemKey) *Write {
	if !q.remove(key) {
		return nil
	}
	return &Write{Kind: WriteResolve, Key: key}
}

// Delete removes the item locally and returns the irreversible delete write.
// Nil for stale keys.
func (q *Queue) Delete(key ItemKey) *Write {
	if !q.remove(key) {
		return nil
	}
	return &Write{Kind: WriteDelete, Key: key}
}

// Edit applies free-text and/or priority changes to the local item and
// returns the edit write. Field names are logical ("title", "context",
// "ask", "priority", "owner"); the store layer maps them to per-type
// columns. Never touches the escalation count. Nil for stale keys or an
// empty field set.
func (q *Queue) Edit(key ItemKey, fields map[string]string) *Write {
	idx := q.indexOf(key)
	if idx < 0 || len(fields) == 0 {
		return nil
	}

	item := &q.items[idx]
	accepted := make(map[string]string, len(fields))
	for field, value := range fields {
		if _, ok := models.FieldColumn(key.Type, field); !ok {
			continue
		}
		accepted[field] = value
		switch field {
		case "title":
			item.Title = value
		case "context":
			v := value
			item.Context = &v
		case "ask":
			v := value
			item.Ask = &v
		case "priority":
			item.Priority = models.ParsePriority(value)
		case "owner":
			v := value
			item.OwnerID = &v
		}
	}
	if len(accepted) == 0 {
		return nil
	}
	return &Write{Kind: WriteEdit, Key: key, Fields: accepted}
}

func (q *Queue) indexOf(key ItemKey) int {
	for i, item := range q.items {
		if item.EntityType == key.Type && item.EntityID == key.ID {
			return i
		}
	}
	return -1
}

func (q *Queue) remove(key ItemKey) bool {
	idx := q.indexOf(key)
	if idx < 0 {
		return false
	}
	q.items = append(q.items[:idx], q.items[idx+1:]...)
	q.renumber()
	return true
}

func (q *Queue) renumber() {
	for i := range q.items {
		q.items[i].Rank = i + 1
	}
}
