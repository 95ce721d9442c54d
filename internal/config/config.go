package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/danmuck/sbcontrol/internal/logging"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultApp     = "sbcontrol"
	DefaultVersion = "1.20.3"
)

// Config describes the host the scoreboard layer runs in.
type Config struct {
	App      string `toml:"app"`
	Version  string `toml:"version"`
	LogLevel string `toml:"log_level"`
	// PacketIDs overrides bundled identifiers, keyed by kind name
	// ("display_objective", "objective", "team", "score", "reset_score").
	PacketIDs map[string]int32 `toml:"packet_ids"`
}

func Default() Config {
	return Config{
		App:       DefaultApp,
		Version:   DefaultVersion,
		LogLevel:  "info",
		PacketIDs: map[string]int32{},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()
	if err := loadToml(path, &cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.App) == "" {
		cfg.App = DefaultApp
	}
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.PacketIDs == nil {
		cfg.PacketIDs = map[string]int32{}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App) == "" {
		return fmt.Errorf("app is required")
	}
	v, err := protocol.ParseVersion(cfg.Version)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}
	overrides, err := parsePacketIDs(cfg.PacketIDs)
	if err != nil {
		return err
	}
	for kind := range overrides {
		if !slices.Contains(protocol.KindsFor(v), kind) {
			return fmt.Errorf("packet_ids.%s on %s: %w", kind, v, protocol.ErrUnsupported)
		}
	}
	return nil
}

// ProtocolVersion returns the parsed version. Load has already validated it.
func (c Config) ProtocolVersion() (protocol.Version, error) {
	return protocol.ParseVersion(c.Version)
}

// Resolver returns the bundled identifier table of the configured version
// with packet_ids applied on top.
func (c Config) Resolver() (protocol.Resolver, error) {
	v, err := c.ProtocolVersion()
	if err != nil {
		return nil, err
	}
	overrides, err := parsePacketIDs(c.PacketIDs)
	if err != nil {
		return nil, err
	}
	return protocol.BuiltinIDs(v).Merge(overrides), nil
}

// Logger tags base with the host app and applies log_level. The
// SBCONTROL_LOG_LEVEL environment variable keeps precedence over the file.
func (c Config) Logger(base zerolog.Logger) zerolog.Logger {
	logger := base.With().Str("host", c.App).Logger()
	if _, fromEnv := logging.ParseLevel(os.Getenv(logging.EnvLogLevel)); fromEnv {
		return logger
	}
	if lvl, ok := logging.ParseLevel(c.LogLevel); ok {
		logger = logger.Level(lvl)
	}
	return logger
}

func parsePacketIDs(raw map[string]int32) (map[protocol.Kind]int32, error) {
	out := make(map[protocol.Kind]int32, len(raw))
	for name, id := range raw {
		kind, err := protocol.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("packet_ids.%s: %w", name, err)
		}
		if id < 0 || id > 0xFF {
			return nil, fmt.Errorf("packet_ids.%s: id %d does not fit one byte", name, id)
		}
		out[kind] = id
	}
	return out, nil
}
