package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/melba-ui/melba/internal/config"
	"github.com/melba-ui/melba/internal/templates"
	envcfg "github.com/melba-ui/melba/pkg/config"
	"github.com/melba-ui/melba/pkg/middleware"
	"github.com/melba-ui/melba/pkg/toast"
	"github.com/melba-ui/melba/pkg/web"
)

// demoEnv carries environment overrides for the demo server. They sit
// between melba.yaml and command-line flags in precedence.
type demoEnv struct {
	Addr       string `env:"MELBA_ADDR"`
	Preset     string `env:"MELBA_PRESET"`
	Position   string `env:"MELBA_POSITION"`
	MaxVisible int    `env:"MELBA_MAX_VISIBLE"`
	Duration   string `env:"MELBA_DURATION"`
	Debug      bool   `env:"MELBA_DEBUG"`
}

func demoCmd() *cobra.Command {
	var (
		addr       string
		preset     string
		pos        string
		duration   string
		maxVisible int
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve the interactive demo page",
		Long: `Serve the interactive demo page backed by a live engine.

Configuration is read from melba.yaml when run inside a project, then
overridden by MELBA_* environment variables, then by flags. Outside a
project the engine runs with defaults and show frames enabled.

Examples:
  melba demo
  melba demo --addr=localhost:9000
  melba demo --preset=bounce --position=top-center`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(addr, preset, pos, duration, maxVisible, debug)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from melba.yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "Animation preset (slide, fade, bounce, none)")
	cmd.Flags().StringVar(&pos, "position", "", "Default container position")
	cmd.Flags().StringVar(&duration, "duration", "", "Default auto-dismiss duration, e.g. 5s")
	cmd.Flags().IntVar(&maxVisible, "max-visible", 0, "Visible window size (0 keeps the configured value)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose logging")

	return cmd
}

func runDemo(addr, preset, pos, duration string, maxVisible int, debug bool) error {
	printBanner()
	fmt.Println("  demo")
	fmt.Println()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	// Load config; outside a project the demo runs with defaults.
	var cfg *config.Config
	if root, rootErr := config.FindProjectRoot(cwd); rootErr == nil {
		if cfg, err = config.Load(root); err != nil {
			return err
		}
		info("Config: %s", cfg.Path())
	} else {
		cfg = config.New()
		cfg.Server.AllowShow = true
		info("No melba.yaml found, using defaults")
	}

	// Environment overrides
	var env demoEnv
	if err := envcfg.Load(&env); err != nil {
		return err
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Preset != "" {
		cfg.Anim.Preset = env.Preset
	}
	if env.Position != "" {
		cfg.Toast.Position = env.Position
	}
	if env.Duration != "" {
		cfg.Toast.Duration = env.Duration
	}
	if env.MaxVisible > 0 {
		cfg.Toast.MaxVisible = env.MaxVisible
	}
	debug = debug || env.Debug

	// Command-line overrides
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if preset != "" {
		cfg.Anim.Preset = preset
	}
	if pos != "" {
		cfg.Toast.Position = pos
	}
	if duration != "" {
		cfg.Toast.Duration = duration
	}
	if maxVisible > 0 {
		cfg.Toast.MaxVisible = maxVisible
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	mgr := toast.New(engineCfg.WithLogger(log))
	defer mgr.Close()

	// Prometheus instruments on a per-run registry.
	reg := prometheus.NewRegistry()
	stopMetrics := middleware.Metrics(mgr, middleware.WithRegistry(reg))
	defer stopMetrics()

	heartbeat, err := cfg.HeartbeatInterval()
	if err != nil {
		return err
	}

	opts := []web.HandlerOption{
		web.WithLogger(log),
		web.WithHeartbeat(heartbeat),
		web.WithMiddleware(middleware.OpenTelemetry()),
	}
	if cfg.Server.AllowShow {
		opts = append(opts, web.WithShowEnabled())
	} else {
		warn("Show frames disabled; the demo page is read-only")
	}

	name := cfg.Name
	if name == "" {
		name = "melba"
	}
	page, err := templates.DemoPage(templates.Config{
		ProjectName: name,
		Description: "Toast lifecycle, live from the engine",
		AllowShow:   cfg.Server.AllowShow,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/melba/", http.StripPrefix("/melba", web.Handler(mgr, opts...)))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go seedToasts(ctx, mgr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Println()
	success("Demo running at %s", cfg.URL())
	info("Bridge:  %s/melba/", cfg.URL())
	info("Metrics: %s/metrics", cfg.URL())
	fmt.Println()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		fmt.Println("\n\n  Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

// seedToasts publishes a few example toasts so the page has something
// to show before anyone touches the form.
func seedToasts(ctx context.Context, mgr *toast.Manager) {
	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return
	}

	_, err := mgr.Info("Welcome to the Melba demo",
		toast.WithTitle("Hello"),
		toast.Sticky(),
		toast.WithActions(
			toast.Action{
				Label:   "Show another",
				Variant: toast.ActionPrimary,
				OnSelect: func() {
					mgr.Success("Fired from a toast action")
				},
			},
		),
	)
	if err != nil {
		errorMsg("Could not seed demo toasts: %v", err)
		return
	}

	id, err := mgr.Show(toast.Payload{
		Message:     "Uploading demo assets",
		Type:        toast.TypeInfo,
		Sticky:      true,
		ProgressBar: true,
	})
	if err != nil {
		return
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var progress float64
	for {
		select {
		case <-ticker.C:
			progress += 2
			if progress >= 100 {
				mgr.UpdateProgress(id, 100)
				mgr.Dismiss(id)
				mgr.Success("Upload complete")
				return
			}
			mgr.UpdateProgress(id, progress)
		case <-ctx.Done():
			return
		}
	}
}
