package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/samdwyer/parley/internal/client"
	"github.com/samdwyer/parley/internal/config"
	"github.com/samdwyer/parley/internal/logger"
	"github.com/samdwyer/parley/internal/scenario"
	"github.com/samdwyer/parley/internal/telemetry"
	"github.com/samdwyer/parley/internal/ui"
)

var (
	debugMode    bool
	backendFlag  string
	scenarioPath string
	echoDelay    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal chat client",
	Long: `Parley is a chat client for character terminals. It shows one window per
conversation next to a roster of contacts and reads commands from the input
line (/win <name>, /close, /password, /quit).

Without a server connection it talks to an in-process echo server.`,
	RunE:          runClient,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "parley %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Seed contacts and history from a scenario file")
	rootCmd.Flags().StringVar(&backendFlag, "backend", "", "Terminal backend (tcell or ansi)")
	rootCmd.Flags().DurationVar(&echoDelay, "echo-delay", 300*time.Millisecond, "Delay before the echo server answers")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadScenario() (*scenario.Scenario, error) {
	if scenarioPath != "" {
		return scenario.FromFile(scenarioPath)
	}
	return scenario.Demo()
}

func startLogging(cfg *config.Config) error {
	path := cfg.LogFile
	if path == "" {
		path = logger.DefaultPath()
	}
	logger.SetDebug(cfg.Debug)
	return logger.Init(path)
}

// startTelemetry installs the OTLP exporter when enabled. The returned
// function is always safe to call.
func startTelemetry(ctx context.Context, cfg *config.Config) func() {
	if !cfg.Telemetry || !telemetry.ConfigureHoneycombEnv() {
		return func() {}
	}
	shutdown, err := telemetry.Setup(ctx, version)
	if err != nil {
		logger.Logger().Warn("telemetry setup failed, running without tracing", "error", err)
		return func() {}
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Logger().Error("telemetry shutdown failed", "error", err)
		}
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario()
	if err != nil {
		return err
	}
	theme, err := cfg.UITheme()
	if err != nil {
		return err
	}
	if err := startLogging(cfg); err != nil {
		return err
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	defer startTelemetry(ctx, cfg)()

	loop := client.NewLoopback(ctx, echoDelay)
	opts := client.Options{
		Config:    cfg,
		Scenario:  sc,
		Transport: loop,
		Tracer:    telemetry.Tracer("client"),
	}

	logger.Logger().Info("starting", "version", version, "backend", cfg.Backend, "nick", cfg.Nick)
	switch cfg.Backend {
	case config.BackendANSI:
		err = runANSI(ctx, opts)
	default:
		err = runTcell(ctx, theme, opts)
	}
	cancel()
	loop.Wait()
	return err
}

func runTcell(ctx context.Context, theme ui.Theme, opts client.Options) error {
	backend, err := ui.NewTcellBackend(theme)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	scr := ui.NewScreen(backend)
	defer scr.Close()

	events := make(chan *client.Event)
	go client.PumpTcell(ctx, backend.Screen(), events)

	return client.New(scr, opts).Run(ctx, events)
}

func runANSI(ctx context.Context, opts client.Options) error {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	os.Stdout.WriteString(ansi.SetAltScreenSaveCursorMode + ansi.EraseEntireScreen)
	defer os.Stdout.WriteString(ansi.ResetAltScreenSaveCursorMode)

	scr := ui.NewScreen(ui.NewTerminal(os.Stdout, 80, 24))
	defer scr.Close()

	keys := make(chan *client.Event)
	go client.ReadKeys(ctx, os.Stdin, keys)

	events := make(chan *client.Event)
	go merge(ctx, events, keys, resizes(ctx))

	return client.New(scr, opts).Run(ctx, events)
}

// merge forwards keys and resizes into out, closing it once keys ends.
func merge(ctx context.Context, out chan<- *client.Event, keys, resize <-chan *client.Event) {
	defer close(out)
	for {
		var ev *client.Event
		select {
		case <-ctx.Done():
			return
		case k, ok := <-keys:
			if !ok {
				return
			}
			ev = k
		case ev = <-resize:
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// resizes reports terminal size changes as events.
func resizes(ctx context.Context) <-chan *client.Event {
	out := make(chan *client.Event, 1)
	sig := make(chan os.Signal, 1)
	notifyResize(sig)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				w, h, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					continue
				}
				select {
				case out <- &client.Event{Kind: client.EventResize, Width: w, Height: h}:
				default:
				}
			}
		}
	}()
	return out
}
