package timer

import (
	"math/rand"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestRepeating_KeepsRemainder(t *testing.T) {
	tm := NewRepeating(100 * time.Millisecond)
	if tm.Tick(60 * time.Millisecond) {
		t.Fatal("fired early")
	}
	if !tm.Tick(60 * time.Millisecond) {
		t.Fatal("did not fire at 120ms")
	}
	if tm.Elapsed() != 20*time.Millisecond {
		t.Errorf("Elapsed = %s, want 20ms remainder", tm.Elapsed())
	}
	if !tm.Tick(80 * time.Millisecond) {
		t.Error("remainder was not carried into the next period")
	}
}

func TestRepeating_AtMostOncePerTick(t *testing.T) {
	tm := NewRepeating(10 * time.Millisecond)
	if !tm.Tick(35 * time.Millisecond) {
		t.Fatal("did not fire")
	}
	if tm.Elapsed() != 5*time.Millisecond {
		t.Errorf("Elapsed = %s, want 5ms", tm.Elapsed())
	}
}

func TestOnce_FiresOnce(t *testing.T) {
	tm := NewOnce(time.Second)
	fires := 0
	for i := 0; i < 10; i++ {
		if tm.Tick(300 * time.Millisecond) {
			fires++
		}
	}
	if fires != 1 {
		t.Errorf("fires = %d, want 1", fires)
	}
	if !tm.Finished() {
		t.Error("one-shot timer not finished")
	}
	tm.Reset()
	if tm.Finished() || tm.Ready() {
		t.Error("Reset did not rewind")
	}
}

func TestRange_Validate(t *testing.T) {
	if err := (Range{Min: time.Second, Max: time.Second}).Validate(); err == nil {
		t.Error("empty range accepted")
	}
	if err := (Range{Min: 2 * time.Second, Max: time.Second}).Validate(); err == nil {
		t.Error("inverted range accepted")
	}
	if err := (Range{Min: time.Second, Max: 2 * time.Second}).Validate(); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
}

func TestRange_RollWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Int64Range(1, 10_000).Draw(t, "lo")
		width := rapid.Int64Range(1, 10_000).Draw(t, "width")
		seed := rapid.Int64().Draw(t, "seed")
		r := Range{Min: time.Duration(lo) * time.Millisecond, Max: time.Duration(lo+width) * time.Millisecond}
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < 50; i++ {
			d := r.Roll(rng)
			if d < r.Min || d >= r.Max {
				t.Fatalf("Roll = %s outside [%s, %s)", d, r.Min, r.Max)
			}
		}
	})
}

func TestPool_RerollsOnlyFiredTimers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	reroll := Range{Min: 3500 * time.Millisecond, Max: 6 * time.Second}
	p := NewPool([]time.Duration{2 * time.Second, 4 * time.Second}, reroll)

	if n := p.Tick(2*time.Second, rng); n != 1 {
		t.Fatalf("Tick fired %d, want 1", n)
	}
	d := p.Durations()
	if d[0] < reroll.Min || d[0] >= reroll.Max {
		t.Errorf("fired timer duration = %s, want within %v", d[0], reroll)
	}
	if d[1] != 4*time.Second {
		t.Errorf("untouched timer duration = %s, want 4s", d[1])
	}
}

func TestPool_GrowAndReset(t *testing.T) {
	p := NewPool([]time.Duration{time.Second}, Range{Min: time.Second, Max: 2 * time.Second})
	p.Grow(2, 5*time.Second)
	if p.Len() != 3 {
		t.Fatalf("Len = %d, want 3", p.Len())
	}
	p.Reset()
	if p.Len() != 1 || p.Durations()[0] != time.Second {
		t.Errorf("after Reset durations = %v, want [1s]", p.Durations())
	}
}

func TestPool_GrowNeverShrinks(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPool([]time.Duration{time.Second}, Range{Min: time.Second, Max: 2 * time.Second})
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		prev := p.Len()
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "grow") {
				p.Grow(rapid.IntRange(0, 3).Draw(t, "n"), 5*time.Second)
			} else {
				p.Tick(time.Duration(rapid.Int64Range(0, 3000).Draw(t, "ms"))*time.Millisecond, rng)
			}
			if p.Len() < prev {
				t.Fatalf("pool shrank from %d to %d", prev, p.Len())
			}
			prev = p.Len()
		}
	})
}

func TestOneShots(t *testing.T) {
	var o OneShots
	o.Add(time.Second)
	o.Add(3 * time.Second)
	if n := o.Tick(time.Second); n != 1 {
		t.Errorf("first Tick fired %d, want 1", n)
	}
	if o.Len() != 1 {
		t.Errorf("Len = %d, want 1", o.Len())
	}
	if n := o.Tick(2 * time.Second); n != 1 {
		t.Errorf("second Tick fired %d, want 1", n)
	}
	if o.Len() != 0 {
		t.Errorf("Len = %d, want 0", o.Len())
	}
}

func TestExpire_ReadyWithoutFiring(t *testing.T) {
	tm := NewOnce(500 * time.Millisecond)
	tm.Expire()
	if !tm.Ready() {
		t.Fatal("expired cooldown not ready")
	}
	if tm.Tick(time.Millisecond) {
		t.Error("expired one-shot fired")
	}
	tm.Reset()
	if tm.Ready() {
		t.Error("Reset cooldown still ready")
	}
}

func TestSetDuration_LongerCooldownRearms(t *testing.T) {
	tm := NewOnce(375 * time.Millisecond)
	tm.Expire()
	tm.SetDuration(468 * time.Millisecond)
	if tm.Ready() {
		t.Fatal("cooldown ready before the longer duration elapsed")
	}
	tm.Tick(93 * time.Millisecond)
	if !tm.Ready() {
		t.Error("cooldown never became ready again")
	}
}
