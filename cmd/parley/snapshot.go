package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/parley/internal/client"
	"github.com/samdwyer/parley/internal/ui"
)

var (
	snapWidth  int
	snapHeight int
	snapWindow string
	snapColor  bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render one frame to stdout",
	Long: `Snapshot builds the client from the scenario, draws a single frame as
escape sequences on stdout and exits. It is meant for documentation and for
checking layouts without an interactive terminal.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().IntVarP(&snapWidth, "width", "w", 80, "Terminal width")
	snapshotCmd.Flags().IntVarP(&snapHeight, "height", "H", 24, "Terminal height")
	snapshotCmd.Flags().StringVar(&snapWindow, "window", client.ConsoleWindow, "Window to show")
	snapshotCmd.Flags().BoolVar(&snapColor, "color", false, "Emit colors")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if snapWidth <= 0 || snapHeight <= 0 {
		return fmt.Errorf("invalid size %dx%d", snapWidth, snapHeight)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	if snapColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Hide the writer's file descriptor so the requested size is used even
	// when stdout is a terminal.
	out := struct{ io.Writer }{cmd.OutOrStdout()}
	scr := ui.NewScreen(ui.NewTerminal(out, snapWidth, snapHeight))

	ctx := context.Background()
	c := client.New(scr, client.Options{Config: cfg, Scenario: sc, Now: time.Now})
	if !slices.Contains(c.Windows(), snapWindow) {
		return fmt.Errorf("no window named %q", snapWindow)
	}
	c.Start(ctx)
	if snapWindow != client.ConsoleWindow {
		c.Dispatch(ctx, &client.Event{Kind: client.EventChangeWindow, Window: snapWindow})
	}
	if err := scr.Err(); err != nil {
		return err
	}
	if err := scr.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
