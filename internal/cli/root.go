// Package cli wires folio's cobra commands to configuration, logging and the
// page, export and preview packages.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/internal/config"
	"github.com/phanxgames/folio/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// state is shared by the root command and its children. It is filled by the
// root's PersistentPreRunE before any RunE executes.
type state struct {
	v        *viper.Viper
	cfgFile  string
	envFiles []string
	cfg      *config.Config
	log      *zap.Logger
}

// flagKeys maps flag names to the viper keys they override. Flags missing
// from the running command are skipped.
var flagKeys = map[string]string{
	"content":        "content",
	"seed":           "seed",
	"debug":          "debug",
	"log-level":      "logger.level",
	"log-format":     "logger.format",
	"log-file":       "logger.log_file",
	"width":          "window.width",
	"height":         "window.height",
	"title":          "window.title",
	"tps":            "window.tps",
	"assets":         "assets",
	"show-fps":       "show_fps",
	"background":     "background",
	"screenshot-dir": "screenshot_dir",
	"test-script":    "test_script",
	"addr":           "serve.addr",
	"rate-limit":     "serve.rate_limit",
	"burst":          "serve.burst",
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	st := &state{v: viper.New()}
	root := &cobra.Command{
		Use:               "folio",
		Short:             "folio renders a personal portfolio page with animated project cards.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: st.setup,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&st.cfgFile, "config", "c", "", "config file (default is ./folio.yaml)")
	pf.StringSliceVar(&st.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	pf.String("content", "", "portfolio YAML file (default: built-in document)")
	pf.Uint64("seed", 1, "seed for every animation's random generator")
	pf.Bool("debug", false, "log per-frame timing at debug level")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console or json)")
	pf.String("log-file", "", "also write JSON logs to this rotating file")

	root.AddCommand(
		newRunCmd(st),
		newExportCmd(st),
		newServeCmd(st),
		newValidateCmd(st),
		newVersionCmd(),
	)
	return root
}

func (st *state) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(st.envFiles...); err != nil {
		return err
	}
	config.Prepare(st.v, st.cfgFile)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := st.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}

	console := zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr()))
	cfg, err := config.Load(st.v)
	if err != nil {
		observability.Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "folio"}, console)
		return err
	}
	observability.Initialize(cfg.Logger, console)
	st.cfg = cfg
	st.log = observability.GetLogger()
	st.log.Debug("configuration loaded", zap.String("file", st.v.ConfigFileUsed()))
	return nil
}

// portfolio loads the configured content document, or the bundled one.
func (st *state) portfolio() (*content.Portfolio, error) {
	if st.cfg.Content == "" {
		return content.Default()
	}
	return content.LoadFile(st.cfg.Content)
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	defer observability.Sync()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if observability.Initialized() {
			observability.GetLogger().Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
