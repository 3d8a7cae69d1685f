package metrics

import (
	"testing"
	"time"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming("open_blockers", 10*time.Millisecond)
	c.RecordTiming("open_blockers", 30*time.Millisecond)
	c.RecordTiming("resolve", 5*time.Millisecond)

	snaps := c.Snapshot()
	if len(snaps) != 2 {
		t.Fatalf("Expected 2 operations, got %d", len(snaps))
	}

	// Sorted by op name.
	ob := snaps[0]
	if ob.Op != "open_blockers" {
		t.Fatalf("Expected open_blockers first, got %q", ob.Op)
	}
	if ob.Count != 2 {
		t.Errorf("Expected count 2, got %d", ob.Count)
	}
	if ob.MinTimeMs != 10 || ob.MaxTimeMs != 30 {
		t.Errorf("Expected min/max 10/30, got %d/%d", ob.MinTimeMs, ob.MaxTimeMs)
	}
	if ob.AvgTimeMs != 20 {
		t.Errorf("Expected avg 20, got %f", ob.AvgTimeMs)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	c := NewCollector()
	if snaps := c.Snapshot(); len(snaps) != 0 {
		t.Errorf("Expected empty snapshot, got %d entries", len(snaps))
	}
	if c.UptimeSeconds() < 0 {
		t.Error("Uptime should not be negative")
	}
}
