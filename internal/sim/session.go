// Package sim wires the simulation systems into a session that the outer
// game loop drives one tick at a time.
package sim

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/combat"
	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/event"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/data"
	"github.com/broadside/sim/internal/difficulty"
	"github.com/broadside/sim/internal/powerup"
	"github.com/broadside/sim/internal/score"
	"github.com/broadside/sim/internal/spawn"
	"github.com/broadside/sim/internal/system"
	"github.com/broadside/sim/internal/terrain"
	"github.com/broadside/sim/internal/world"
)

// Input is the resolved player intent for one tick.
type Input = system.Input

// State is the lifecycle state of a session.
type State int

const (
	StateReset   State = iota // wiped, waiting for Begin
	StateRunning              // ticking
	StatePaused               // frozen, entity state untouched
	StateEnded                // the player died; waiting for Restart
)

var stateNames = [...]string{"reset", "running", "paused", "ended"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Scripts are the optional scripted formulas. *scripting.Engine satisfies it.
type Scripts interface {
	difficulty.Formula
	combat.Scorer
}

// Options configures a Session.
type Options struct {
	Config  *config.Config
	Tables  *data.Tables
	Rng     *rand.Rand // nil = seeded from config or the clock
	Scripts Scripts    // nil = built-in formulas
	Log     *zap.Logger
}

// Session is the single owner of all simulation state: the entity registry,
// spawn pools, difficulty tier and score. Not safe for concurrent use; the
// game loop goroutine owns it.
type Session struct {
	cfg   *config.Config
	world *world.State
	bus   *event.Bus

	gen      *terrain.Generator
	spawner  *spawn.Spawner
	resolver *combat.Resolver
	effects  *powerup.Effects
	diff     *difficulty.Controller
	tracker  *score.Tracker

	runner  *coresys.Runner
	input   system.InputBuffer
	terrain *system.TerrainSystem
	combat  *system.CombatSystem

	state   State
	tick    uint64
	lastEnd *event.RunEnded

	log *zap.Logger
}

func New(opts Options) *Session {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rng
	if rng == nil {
		seed := cfg.Simulation.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	bus := event.NewBus()
	ws := world.NewState(cfg, opts.Tables, rng, bus, log.Named("world"))

	var formula difficulty.Formula
	var scorer combat.Scorer
	if opts.Scripts != nil {
		formula, scorer = opts.Scripts, opts.Scripts
	}

	s := &Session{
		cfg:      cfg,
		world:    ws,
		bus:      bus,
		gen:      terrain.NewGenerator(cfg.Field.TileSize, cfg.Field.GenerateAhead),
		spawner:  spawn.New(ws, cfg.Spawn, log.Named("spawn")),
		resolver: combat.NewResolver(ws, scorer, log.Named("combat")),
		effects:  powerup.New(ws, cfg.PowerUp, log.Named("powerup")),
		diff:     difficulty.New(cfg.Difficulty, formula, log.Named("difficulty")),
		tracker:  score.New(cfg.Score.DistanceScale),
		runner:   coresys.NewRunner(),
		log:      log,
	}
	s.registerSystems()
	event.Subscribe(bus, s.onRunEnded)
	return s
}

func (s *Session) registerSystems() {
	ws := s.world
	s.terrain = system.NewTerrainSystem(ws, s.gen)
	s.combat = system.NewCombatSystem(s.resolver)

	s.runner.Register(system.NewPlayerControlSystem(ws, &s.input))
	s.runner.Register(system.NewMotionSystem(ws))
	s.runner.Register(system.NewAimSystem(ws, &s.input))
	s.runner.Register(s.terrain)
	s.runner.Register(system.NewSpawnSystem(s.spawner))
	s.runner.Register(system.NewCannonSystem(ws, &s.input))
	s.runner.Register(s.combat)
	s.runner.Register(system.NewPowerUpSystem(s.effects))
	s.runner.Register(system.NewProgressSystem(ws, s.combat, s.tracker, s.diff, s.spawner, s.log.Named("progress")))
	s.runner.Register(system.NewDispatchSystem(s.bus))
	s.runner.Register(system.NewCleanupSystem(ws, s.resolver))
}

func (s *Session) onRunEnded(ev event.RunEnded) {
	s.state = StateEnded
	s.lastEnd = &ev
	s.log.Info("run ended",
		zap.Int("score", ev.Score),
		zap.Float64("distance", ev.Distance),
		zap.Float64("elapsed", ev.Elapsed),
		zap.String("tier", ev.Tier),
	)
}

// Begin starts a run from the reset state: the player is placed and terrain
// is generated up to the lead distance. Begin on a running or paused
// session is a no-op; on an ended one it restarts first.
func (s *Session) Begin() {
	switch s.state {
	case StateRunning, StatePaused:
		return
	case StateEnded:
		s.Restart()
	}
	s.world.EnsurePlayer()
	rows := s.terrain.Fill()
	s.state = StateRunning
	s.log.Info("run started", zap.Int("terrain_rows", rows), zap.Int("spawn_timers", s.spawner.Timers()))
}

// Restart wipes the run: every non-permanent entity, the spawn pools, the
// terrain frontiers, the difficulty tier, the score and any running
// upgrades. The session is left in the reset state. Restarting twice leaves
// the same state as restarting once.
func (s *Session) Restart() {
	removed := s.world.Reset()
	s.gen.Reset()
	s.spawner.Reset()
	s.effects.Reset()
	s.diff.Reset()
	s.tracker.Reset()
	s.resolver.Reset()
	s.runner.Reset()
	s.input.Set(Input{})
	s.lastEnd = nil
	s.state = StateReset
	s.log.Info("run reset", zap.Int("removed", removed))
}

// Pause freezes the simulation. Entity state is untouched.
func (s *Session) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
		s.log.Info("paused")
	}
}

// Resume continues a paused run.
func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
		s.log.Info("resumed")
	}
}

// Tick advances the simulation one fixed step with the given intent. It
// does nothing unless the session is running and reports whether it ran.
func (s *Session) Tick(in Input) bool {
	if s.state != StateRunning {
		return false
	}
	s.input.Set(in)
	s.runner.Tick(s.cfg.Simulation.TickRate)
	s.tick++
	return true
}

func (s *Session) State() State { return s.state }

// Ticks is the number of ticks run since the session was created.
func (s *Session) Ticks() uint64 { return s.tick }

// Ended returns the last run-ended signal of the current run, if any.
func (s *Session) Ended() (event.RunEnded, bool) {
	if s.lastEnd == nil {
		return event.RunEnded{}, false
	}
	return *s.lastEnd, true
}

// Bus exposes the event bus so collaborators (audio, journal) can subscribe.
// Events are delivered during Tick, from the simulation goroutine.
func (s *Session) Bus() *event.Bus { return s.bus }

// World exposes the entity registry. Intended for tests and tools.
func (s *Session) World() *world.State { return s.world }

// Tier is the current difficulty tier.
func (s *Session) Tier() difficulty.Tier { return s.diff.Tier() }

// Spawner exposes the spawn pools. Intended for tests and tools.
func (s *Session) Spawner() *spawn.Spawner { return s.spawner }

// Score returns a snapshot of the run's progress.
func (s *Session) Score() score.Snapshot { return s.tracker.Snapshot() }
