// Command boatsim runs the boat combat simulation headless. An autopilot
// plays when no renderer is connected to the feed; finished runs go to the
// journal.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/event"
	"github.com/broadside/sim/internal/data"
	"github.com/broadside/sim/internal/feed"
	"github.com/broadside/sim/internal/hud"
	"github.com/broadside/sim/internal/journal"
	"github.com/broadside/sim/internal/scripting"
	"github.com/broadside/sim/internal/sim"
)

// restartAfter is how long an ended run stays on screen before the
// autopilot starts the next one.
const restartAfter = 3 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/boatsim.toml"
	if p := os.Getenv("BOATSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Data tables and scripts
	tables, err := data.LoadTables(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	log.Info("tables loaded",
		zap.Int("kinds", tables.Kinds.Count()),
		zap.String("dir", cfg.Data.Dir),
	)

	opts := sim.Options{Config: cfg, Tables: tables, Log: log.Named("sim")}
	if cfg.Scripting.Dir != "" {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		opts.Scripts = engine
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Rng = rand.New(rand.NewSource(seed))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Journal
	var rec journal.Recorder = journal.NewMemoryRecorder()
	if cfg.Journal.Enabled {
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		db, err := journal.NewDB(dbCtx, cfg.Journal, log.Named("journal"))
		if err != nil {
			cancel()
			return fmt.Errorf("journal database: %w", err)
		}
		defer db.Close()
		err = db.Migrate(dbCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("journal migrations: %w", err)
		}
		rec = journal.NewPostgresRecorder(db)
		log.Info("journal connected")
	}
	writer := journal.NewWriter(rec, 16, log.Named("journal"))

	// 5. Session
	session := sim.New(opts)
	event.Subscribe(session.Bus(), func(ev event.RunEnded) {
		writer.Submit(journal.FromEvent(ev, cfg.Difficulty.DistanceDivisor, seed, time.Now()))
	})
	event.Subscribe(session.Bus(), func(ev event.DifficultyRaised) {
		log.Info("difficulty raised", zap.String("tier", ev.Tier))
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return writer.Run(gctx) })

	var hub *feed.Hub
	if cfg.Feed.Enabled {
		hub = feed.NewHub(8, log.Named("feed"))
		srv, err := feed.NewServer(cfg.Feed.BindAddress, hub, log.Named("feed"))
		if err != nil {
			return fmt.Errorf("feed: %w", err)
		}
		g.Go(func() error { return srv.Run(gctx) })
	}

	g.Go(func() error { return loop(gctx, cfg, session, hub, log) })

	log.Info("simulation started",
		zap.Int64("seed", seed),
		zap.Duration("tick", cfg.Simulation.TickRate),
		zap.Bool("journal", cfg.Journal.Enabled),
		zap.Bool("feed", cfg.Feed.Enabled),
	)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	best, err := rec.Best(context.Background(), 5)
	if err != nil {
		log.Warn("load best runs", zap.Error(err))
	}
	for i, r := range best {
		log.Info("best run", zap.Int("rank", i+1), zap.Int("score", r.Score), zap.String("tier", r.Tier))
	}
	log.Info("simulation stopped")
	return nil
}

// loop is the game loop: one session tick per ticker tick. It owns the
// session; nothing else touches it.
func loop(ctx context.Context, cfg *config.Config, session *sim.Session, hub *feed.Hub, log *zap.Logger) error {
	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	perSecond := int(time.Second / cfg.Simulation.TickRate)
	if perSecond < 1 {
		perSecond = 1
	}
	restartTicks := int(restartAfter / cfg.Simulation.TickRate)
	every := cfg.Feed.EveryNTicks
	if every < 1 {
		every = 1
	}

	pilot := &autopilot{}
	text := hud.NewFormatter("en")
	var (
		remote    sim.Input
		hasRemote bool
		count     int
		ended     int
	)
	var commands <-chan feed.Command
	if hub != nil {
		commands = hub.Commands()
	}

	session.Begin()
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-commands:
			if cmd.Signal != "" {
				signalSession(session, cmd.Signal)
				continue
			}
			remote, hasRemote = cmd.Input(), true
		case <-ticker.C:
			count++
			driven := hub != nil && hub.Clients() > 0 && hasRemote
			in := remote
			if !driven {
				in = pilot.next(session.World())
			}
			if !session.Tick(in) && session.State() == sim.StateEnded && !driven {
				ended++
				if ended >= restartTicks {
					ended = 0
					session.Begin()
				}
			}
			if hub != nil && count%every == 0 {
				hub.Publish(session.Frame())
			}
			if count%perSecond == 0 {
				log.Debug("hud", zap.Stringer("hud", text.Format(session.HUD())))
			}
		}
	}
}

func signalSession(s *sim.Session, sig string) {
	switch sig {
	case feed.SignalBegin:
		s.Begin()
	case feed.SignalRestart:
		s.Restart()
	case feed.SignalPause:
		s.Pause()
	case feed.SignalResume:
		s.Resume()
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
