// Package hud renders the HUD snapshot as display text for a language.
package hud

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/broadside/sim/internal/sim"
)

// BarWidth is the number of cells in the health bar.
const BarWidth = 10

// Formatter turns HUD snapshots into text lines. Numbers are grouped the way
// the configured language writes them.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for tag. An unparsable tag falls back to
// English.
func NewFormatter(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	return &Formatter{p: message.NewPrinter(t)}
}

// Lines is the formatted HUD.
type Lines struct {
	Score    string
	Distance string
	Elapsed  string
	Health   string
	Status   string
}

// Format renders h.
func (f *Formatter) Format(h sim.HUD) Lines {
	l := Lines{
		Score:    f.p.Sprintf("Score %d", h.Score),
		Distance: f.p.Sprintf("%d m", int(math.Floor(h.Distance))),
		Elapsed:  Clock(h.Elapsed),
		Health:   Bar(h.HealthAmount, h.HealthMax) + f.p.Sprintf(" %d/%d", h.HealthAmount, h.HealthMax),
		Status:   h.Tier,
	}
	if h.ActivePowerUps > 0 {
		l.Status += f.p.Sprintf(" +%d", h.ActivePowerUps)
	}
	if h.State != "running" {
		l.Status += " [" + h.State + "]"
	}
	return l
}

// String joins the lines for a single status row.
func (l Lines) String() string {
	return strings.Join([]string{l.Score, l.Distance, l.Elapsed, l.Health, l.Status}, "  ")
}

// Clock formats d as mm:ss. Minutes keep counting past 59.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Bar draws amount/max as BarWidth cells, rounding partial cells up so that
// any remaining health stays visible.
func Bar(amount, limit int) string {
	if limit <= 0 {
		return "[" + strings.Repeat("-", BarWidth) + "]"
	}
	if amount < 0 {
		amount = 0
	}
	if amount > limit {
		amount = limit
	}
	full := (amount*BarWidth + limit - 1) / limit
	return "[" + strings.Repeat("#", full) + strings.Repeat("-", BarWidth-full) + "]"
}
