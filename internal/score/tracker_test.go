package score

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestAdvance(t *testing.T) {
	tr := New(16)
	tr.Advance(time.Second, 288+160, 288)
	if tr.Distance() != 10 {
		t.Errorf("Distance = %v, want 10", tr.Distance())
	}
	tr.Advance(time.Second, 100, 288)
	if tr.Distance() != 0 {
		t.Errorf("Distance behind spawn = %v, want 0", tr.Distance())
	}
	if tr.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed = %s", tr.Elapsed())
	}
}

func TestDistance_NonDecreasingWhileMovingAway(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := New(16)
		y := 288.0
		prev := 0.0
		for i := 0; i < 100; i++ {
			y += rapid.Float64Range(0.001, 10).Draw(t, "dy")
			tr.Advance(16*time.Millisecond, y, 288)
			if tr.Distance() < prev {
				t.Fatalf("distance fell %v -> %v", prev, tr.Distance())
			}
			prev = tr.Distance()
		}
	})
}

func TestReset(t *testing.T) {
	tr := New(16)
	tr.Advance(time.Minute, 1000, 0)
	tr.AddKill(10)
	tr.Reset()
	if tr.Snapshot() != (Snapshot{}) {
		t.Errorf("Snapshot after Reset = %+v", tr.Snapshot())
	}
	tr.Advance(0, 16, 0)
	if tr.Distance() != 1 {
		t.Errorf("scale lost on Reset: distance %v", tr.Distance())
	}
}

func TestDisplay(t *testing.T) {
	s := Snapshot{Score: 20, Distance: 149.9}
	if got := s.Display(50); got != 22 {
		t.Errorf("Display = %d, want 22", got)
	}
}
