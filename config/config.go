package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmesh/generate"
)

// ErrConfig indicates an unreadable or invalid configuration.
var ErrConfig = errors.New("config: invalid configuration")

// Server configures the HTTP surface.
type Server struct {
	Addr string `yaml:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
	// BodyLimit caps request bodies, in bytes.
	BodyLimit int64 `yaml:"body_limit"`
	// BatchLimit caps concurrently generated meshes per batch request.
	BatchLimit int `yaml:"batch_limit"`
	// MaxBatch caps the number of requests in one batch.
	MaxBatch int `yaml:"max_batch"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Config is the complete service configuration.
type Config struct {
	Server   Server            `yaml:"server"`
	Log      Log               `yaml:"log"`
	Defaults generate.Defaults `yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:       ":8080",
			Mode:       "release",
			BodyLimit:  4 << 20,
			BatchLimit: 4,
			MaxBatch:   64,
		},
		Log: Log{Level: "info", Format: "text"},
		Defaults: generate.Defaults{
			Algorithm:       string(generate.Delaunay),
			Metric:          "angle",
			Threshold:       20,
			MaxIterations:   1000,
			SmoothingPasses: 0,
		},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r over Default and validates the result. An empty
// document yields Default.
func Decode(r io.Reader) (Config, error) {
	// 1) Defaults.
	cfg := Default()
	// 2) Decode over them, rejecting unknown keys.
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	// 3) Validate.
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and enumerations, including the request defaults.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrConfig)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server.mode %q", ErrConfig, c.Server.Mode)
	}
	if c.Server.BodyLimit <= 0 || c.Server.BatchLimit <= 0 || c.Server.MaxBatch <= 0 {
		return fmt.Errorf("%w: server limits must be positive", ErrConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrConfig, c.Log.Format)
	}
	// A defaults-only request must plan cleanly; geometry is checked per call.
	bare := generate.Request{}.WithDefaults(c.Defaults)
	if err := generate.Check(bare); err != nil {
		return fmt.Errorf("%w: defaults: %w", ErrConfig, err)
	}

	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrConfig, s)
	}

	return l, nil
}

// NewLogger builds the logger described by c writing to w.
func (c Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}
