package cli

import (
	"fmt"
	"os"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/canvas"
	"github.com/phanxgames/folio/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Seams for tests, which cannot open a window.
var (
	runApp     = folio.Run
	newSurface func(w, h int) canvas.Surface
)

func newRunCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the portfolio in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			p, err := st.portfolio()
			if err != nil {
				return err
			}

			opts := appOptions(cfg, st.log)
			var runner *folio.TestRunner
			if cfg.TestScript != "" {
				data, err := os.ReadFile(cfg.TestScript)
				if err != nil {
					return fmt.Errorf("test script: %w", err)
				}
				if runner, err = folio.LoadTestScript(data); err != nil {
					return fmt.Errorf("test script %s: %w", cfg.TestScript, err)
				}
				opts.ExitWhenDone = true
			}

			app, err := folio.NewApp(p, opts)
			if err != nil {
				return err
			}
			if runner != nil {
				app.SetTestRunner(runner)
				st.log.Info("running test script",
					zap.String("path", cfg.TestScript), zap.Int("steps", runner.Steps()))
			}
			title := cfg.Window.Title
			if title == "" {
				title = p.Name
			}
			st.log.Info("opening window",
				zap.String("title", title),
				zap.Int("width", cfg.Window.Width),
				zap.Int("height", cfg.Window.Height),
				zap.Int("sections", len(app.Page().Sections())),
			)
			return runApp(app, folio.RunConfig{
				Title:     title,
				Width:     cfg.Window.Width,
				Height:    cfg.Window.Height,
				TPS:       cfg.Window.TPS,
				Resizable: cfg.Window.Resizable,
			})
		},
	}

	f := cmd.Flags()
	f.Int("width", 1280, "window width")
	f.Int("height", 800, "window height")
	f.String("title", "", "window title (default: the portfolio name)")
	f.Int("tps", 60, "updates per second")
	f.String("assets", ".", "directory project videos are read from")
	f.Bool("show-fps", false, "show the FPS overlay")
	f.Bool("background", true, "draw the animated background behind the page")
	f.String("screenshot-dir", "screenshots", "directory for test script screenshots")
	f.String("test-script", "", "JSON test script to run, exiting when done")
	return cmd
}

func appOptions(cfg *config.Config, log *zap.Logger) folio.AppOptions {
	return folio.AppOptions{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		TPS:           cfg.Window.TPS,
		Seed:          cfg.Seed,
		Logger:        log,
		Opener:        folio.SystemOpener{},
		Assets:        os.DirFS(cfg.Assets),
		NewSurface:    newSurface,
		ScreenshotDir: cfg.ScreenshotDir,
		Debug:         cfg.Debug,
		ShowFPS:       cfg.ShowFPS,
		Background:    cfg.Background,
	}
}
