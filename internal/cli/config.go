package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/internal/api"
	"github.com/matzehuels/siderail/pkg/errors"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the user configuration read from config.toml.
//
//	log_level = "debug"
//
//	[cache]
//	backend = "redis"
//	prefix  = "staging:"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr      = ":9090"
//	pages_dir = "./pages"
type Config struct {
	LogLevel string       `toml:"log_level"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the plan cache.
type CacheConfig struct {
	// Backend is file (default), redis or none.
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// Prefix namespaces every cache key.
	Prefix string `toml:"prefix"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	PagesDir string `toml:"pages_dir"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = backendFile
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = "localhost:6379"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = api.DefaultAddr
	}
}

// Validate checks the backend and log level.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// loadConfig reads path, or the default config file when path is empty. A
// missing default file yields the defaults; a missing explicit file is an
// error. Unknown keys are rejected.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			cfg := &Config{}
			cfg.SetDefaults()
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	default:
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
