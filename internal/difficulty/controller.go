// Package difficulty promotes the run through its difficulty tiers.
package difficulty

import (
	"go.uber.org/zap"

	"github.com/broadside/sim/internal/config"
)

type Tier int

const (
	Initial Tier = iota
	Medium
	Hard
)

var tierNames = [...]string{"initial", "medium", "hard"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// Formula lets a script replace the effective-score formula. fallback is
// the built-in result.
type Formula interface {
	DifficultyScore(score int, distance float64, fallback int) int
}

// Controller tracks the current tier. Tiers only ever go up; each promotion
// is reported once, by the Evaluate call that crosses its threshold.
type Controller struct {
	cfg     config.DifficultyConfig
	formula Formula
	tier    Tier
	log     *zap.Logger
}

// New builds a controller. formula may be nil.
func New(cfg config.DifficultyConfig, formula Formula, log *zap.Logger) *Controller {
	return &Controller{cfg: cfg, formula: formula, log: log}
}

func (c *Controller) Tier() Tier { return c.tier }

// Effective is score + floor(distance / divisor), unless a script overrides it.
func (c *Controller) Effective(score int, distance float64) int {
	v := score + int(distance)/c.cfg.DistanceDivisor
	if c.formula != nil {
		v = c.formula.DifficultyScore(score, distance, v)
	}
	return v
}

// Evaluate promotes the tier as far as the effective score allows and
// returns the tiers entered, lowest first. A jump straight past both
// thresholds reports Medium and Hard in the same call.
func (c *Controller) Evaluate(score int, distance float64) []Tier {
	eff := c.Effective(score, distance)
	var entered []Tier
	for {
		next, ok := c.next(eff)
		if !ok {
			return entered
		}
		c.tier = next
		entered = append(entered, next)
		c.log.Info("difficulty raised", zap.Stringer("tier", next), zap.Int("effective_score", eff))
	}
}

func (c *Controller) next(eff int) (Tier, bool) {
	switch c.tier {
	case Initial:
		return Medium, eff > c.cfg.MediumThreshold
	case Medium:
		return Hard, eff > c.cfg.HardThreshold
	}
	return c.tier, false
}

// Growth returns the spawn timers added on entering t.
func (c *Controller) Growth(t Tier) config.TierGrowth {
	switch t {
	case Medium:
		return c.cfg.Medium
	case Hard:
		return c.cfg.Hard
	}
	return config.TierGrowth{}
}

// Reset returns to the initial tier.
func (c *Controller) Reset() { c.tier = Initial }
