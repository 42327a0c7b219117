package risk

import (
	"fmt"
	"testing"
)

func recordWithID(id string) CallRecord {
	return CallRecord{ID: id}
}

func TestNewWindowRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -20} {
		if _, err := NewWindow(capacity); err == nil {
			t.Fatalf("NewWindow(%d) error = nil, want error", capacity)
		}
	}
}

func TestWindowFIFOEviction(t *testing.T) {
	for _, capacity := range []int{1, 2, 5, 20} {
		t.Run(fmt.Sprintf("capacity_%d", capacity), func(t *testing.T) {
			w, err := NewWindow(capacity)
			if err != nil {
				t.Fatalf("NewWindow(%d) error = %v", capacity, err)
			}

			pushes := 2*capacity + 3
			for i := 0; i < pushes; i++ {
				w.Push(recordWithID(fmt.Sprintf("rec-%d", i)))
			}

			snap := w.Snapshot()
			if len(snap) != capacity {
				t.Fatalf("len(Snapshot()) = %d, want %d", len(snap), capacity)
			}
			for i, rec := range snap {
				want := fmt.Sprintf("rec-%d", pushes-capacity+i)
				if rec.ID != want {
					t.Fatalf("Snapshot()[%d].ID = %q, want %q", i, rec.ID, want)
				}
			}
		})
	}
}

func TestWindowLenBelowCapacity(t *testing.T) {
	w, err := NewWindow(10)
	if err != nil {
		t.Fatalf("NewWindow error = %v", err)
	}

	if w.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", w.Len())
	}
	for i := 0; i < 4; i++ {
		w.Push(recordWithID(fmt.Sprintf("rec-%d", i)))
	}
	if w.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", w.Len())
	}
	if w.Capacity() != 10 {
		t.Fatalf("Capacity() = %d, want 10", w.Capacity())
	}

	snap := w.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("len(Snapshot()) = %d, want 4", len(snap))
	}
	if snap[0].ID != "rec-0" || snap[3].ID != "rec-3" {
		t.Fatalf("Snapshot order wrong: first=%q last=%q", snap[0].ID, snap[3].ID)
	}
}

func TestWindowSnapshotIsACopy(t *testing.T) {
	w, err := NewWindow(3)
	if err != nil {
		t.Fatalf("NewWindow error = %v", err)
	}
	w.Push(recordWithID("rec-0"))

	snap := w.Snapshot()
	w.Push(recordWithID("rec-1"))
	w.Push(recordWithID("rec-2"))
	w.Push(recordWithID("rec-3"))

	if len(snap) != 1 || snap[0].ID != "rec-0" {
		t.Fatalf("snapshot mutated by later pushes: %+v", snap)
	}
}
