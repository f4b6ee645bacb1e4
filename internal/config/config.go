// Package config loads folio's runtime settings from a YAML file, FOLIO_*
// environment variables (optionally seeded from a .env file) and command
// line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. FOLIO_WINDOW_WIDTH.
const EnvPrefix = "FOLIO"

// Config is the full runtime configuration.
type Config struct {
	Window WindowConfig `mapstructure:"window" yaml:"window"`
	// Content is a portfolio YAML path. Empty selects the bundled document.
	Content string `mapstructure:"content" yaml:"content"`
	// Assets is the directory local video clips are resolved against.
	Assets        string       `mapstructure:"assets" yaml:"assets"`
	Seed          uint64       `mapstructure:"seed" yaml:"seed"`
	Debug         bool         `mapstructure:"debug" yaml:"debug"`
	ShowFPS       bool         `mapstructure:"show_fps" yaml:"show_fps"`
	Background    bool         `mapstructure:"background" yaml:"background"`
	ScreenshotDir string       `mapstructure:"screenshot_dir" yaml:"screenshot_dir"`
	TestScript    string       `mapstructure:"test_script" yaml:"test_script"`
	Logger        LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Serve         ServeConfig  `mapstructure:"serve" yaml:"serve"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	Title     string `mapstructure:"title" yaml:"title"`
	TPS       int    `mapstructure:"tps" yaml:"tps"`
	Resizable bool   `mapstructure:"resizable" yaml:"resizable"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	// RateLimit is the sustained frame renders per second across clients.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst     int     `mapstructure:"burst" yaml:"burst"`
	// MaxFrame caps the frame index a client may request.
	MaxFrame int `mapstructure:"max_frame" yaml:"max_frame"`
	// MaxSize caps each dimension of a rendered frame.
	MaxSize int `mapstructure:"max_size" yaml:"max_size"`
	// RenderTimeout bounds one frame render, client disconnects aside.
	RenderTimeout time.Duration `mapstructure:"render_timeout" yaml:"render_timeout"`
}

// LoggerConfig configures zap.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color of each level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "")
	v.SetDefault("window.tps", 60)
	v.SetDefault("window.resizable", true)

	v.SetDefault("content", "")
	v.SetDefault("assets", ".")
	v.SetDefault("seed", 1)
	v.SetDefault("debug", false)
	v.SetDefault("show_fps", false)
	v.SetDefault("background", true)
	v.SetDefault("screenshot_dir", "screenshots")
	v.SetDefault("test_script", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "folio")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.fatal", "magenta")

	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("serve.rate_limit", 20.0)
	v.SetDefault("serve.burst", 40)
	v.SetDefault("serve.max_frame", 600)
	v.SetDefault("serve.max_size", 1920)
	v.SetDefault("serve.render_timeout", 5*time.Second)
}

// NewDefaultConfig returns the defaults with no file or environment applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are ignored and existing
// variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Prepare points v at cfgFile (or ./folio.yaml when empty) and the FOLIO_
// environment. Flags should be bound to v before Load.
func Prepare(v *viper.Viper, cfgFile string) {
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the config file if present, then decodes and validates v.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	if c.Serve.RateLimit <= 0 || c.Serve.Burst <= 0 {
		errs = append(errs, errors.New("serve.rate_limit and serve.burst must be positive"))
	}
	if c.Serve.MaxFrame < 0 || c.Serve.MaxSize <= 0 {
		errs = append(errs, errors.New("serve.max_frame must not be negative and serve.max_size must be positive"))
	}
	if c.Serve.RenderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("serve.render_timeout must be positive, got %s", c.Serve.RenderTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
