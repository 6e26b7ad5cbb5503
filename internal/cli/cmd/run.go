package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/ledge/internal/config"
	"github.com/bnema/ledge/internal/geometry"
	"github.com/bnema/ledge/internal/logging"
	"github.com/bnema/ledge/internal/minimize"
	"github.com/bnema/ledge/internal/orchestrator"
	"github.com/bnema/ledge/internal/panel"
)

var (
	runTickRate time.Duration
	runOutputs  []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the panel layout daemon",
	Long: `Start the daemon: load the configuration, spawn panel instances on
the configured outputs, watch the config file for changes, and drive the
layout/visibility tick loop until interrupted.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&runTickRate, "tick", 16*time.Millisecond, "tick interval for layout and autohide")
	runCmd.Flags().StringSliceVar(&runOutputs, "output", []string{"headless-1:1920x1080"},
		"outputs to register, as name:WxH")
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	manager, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	log := logging.New(logging.ApplyEnv(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: time.RFC3339,
	}))
	log.Info().Str("version", version).Str("config", manager.GetConfigFile()).Msg("starting")

	stateDir, err := config.GetStateDir()
	if err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	defer logging.CrashReport(log, stateDir)

	tracker := minimize.NewTracker(minimize.ForwarderFunc(func(output string, rect geometry.Rect) {
		log.Debug().Str("output", output).Stringer("size", rect.Size).Msg("minimize target")
	}), log)
	orch := orchestrator.New(orchestrator.NewHeadlessFactory(log), tracker, cfg.Theme.Palette(), log)

	outputs, err := parseOutputs(runOutputs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config changes land on this channel and are applied on the tick
	// goroutine, keeping all orchestrator access single-threaded.
	changes := make(chan *config.Config, 1)
	manager.OnConfigChange(func(updated *config.Config) {
		select {
		case changes <- updated:
		default:
		}
	})
	if err := manager.Watch(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orch.ApplyConfig(cfg)
		for _, out := range outputs {
			orch.AddOutput(out)
		}

		ticker := time.NewTicker(runTickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case updated := <-changes:
				log.Info().Msg("configuration changed")
				orch.ApplyConfig(updated)
			case now := <-ticker.C:
				orch.Tick(now)
			}
		}
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Msg("shutting down")
	return nil
}

// parseOutputs parses name:WxH output descriptors. The mode defaults to
// 1920x1080 when omitted.
func parseOutputs(specs []string) ([]panel.Output, error) {
	outs := make([]panel.Output, 0, len(specs))
	for _, raw := range specs {
		name, mode, found := strings.Cut(raw, ":")
		if name == "" {
			return nil, fmt.Errorf("invalid output %q", raw)
		}
		out := panel.Output{Name: name, Mode: geometry.Size{W: 1920, H: 1080}}
		if found {
			var w, h int
			if n, err := fmt.Sscanf(mode, "%dx%d", &w, &h); err != nil || n != 2 || w < 1 || h < 1 {
				return nil, fmt.Errorf("invalid output mode %q", raw)
			}
			out.Mode = geometry.Size{W: w, H: h}
		}
		outs = append(outs, out)
	}
	return outs, nil
}
