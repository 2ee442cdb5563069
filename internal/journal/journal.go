// Package journal records finished runs so that best scores survive the
// process.
package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/broadside/sim/internal/core/event"
)

// Run is the summary of one finished run.
type Run struct {
	ID        uuid.UUID
	Seed      int64
	KillScore int
	Score     int // kill score plus the distance bonus, as shown on the HUD
	Distance  float64
	Elapsed   time.Duration
	Tier      string
	EndedAt   time.Time
}

// FromEvent builds a Run from the run-ended signal.
func FromEvent(ev event.RunEnded, divisor int, seed int64, now time.Time) Run {
	score := ev.Score
	if divisor > 0 {
		score += int(ev.Distance) / divisor
	}
	return Run{
		ID:        uuid.New(),
		Seed:      seed,
		KillScore: ev.Score,
		Score:     score,
		Distance:  ev.Distance,
		Elapsed:   time.Duration(ev.Elapsed * float64(time.Second)),
		Tier:      ev.Tier,
		EndedAt:   now,
	}
}

// Recorder stores runs.
type Recorder interface {
	Record(ctx context.Context, r Run) error
	// Best returns up to limit runs, highest score first. Ties go to the
	// earlier run.
	Best(ctx context.Context, limit int) ([]Run, error)
}

// MemoryRecorder keeps runs in process memory.
type MemoryRecorder struct {
	mu   sync.Mutex
	runs []Run
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Record(_ context.Context, r Run) error {
	m.mu.Lock()
	m.runs = append(m.runs, r)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRecorder) Best(_ context.Context, limit int) ([]Run, error) {
	m.mu.Lock()
	out := make([]Run, len(m.runs))
	copy(out, m.runs)
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].EndedAt.Before(out[j].EndedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
