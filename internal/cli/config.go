package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/placement"
	"github.com/matzehuels/pixelgrid/pkg/settings"
	"github.com/matzehuels/pixelgrid/pkg/storage"
)

const (
	// appName is the application name used for directories and display.
	appName = "pixelgrid"

	// configEnv names an alternate config file.
	configEnv = "PIXELGRID_CONFIG"

	defaultServerAddr = "127.0.0.1:7357"
)

// Storage backends.
const (
	backendMemory = "memory"
	backendFile   = "file"
	backendRedis  = "redis"
	backendMongo  = "mongo"
)

// Config is the contents of config.toml.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Browser BrowserConfig `toml:"browser"`
}

// StorageConfig selects where settings are persisted. Redis and Mongo are
// backed by the file store when they cannot be reached.
type StorageConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Key     string `toml:"key"`
	// Profile keeps a separate set of settings in the same backend.
	Profile string              `toml:"profile"`
	Redis   storage.RedisConfig `toml:"redis"`
	Mongo   storage.MongoConfig `toml:"mongo"`
}

// ServerConfig configures `pixelgrid serve` and the message endpoint of
// `pixelgrid inject`.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// Viewport is the page size assumed when no browser is attached.
	Viewport placement.Viewport `toml:"viewport"`
}

// BrowserConfig configures Chrome for `pixelgrid inject`.
type BrowserConfig struct {
	Headless bool           `toml:"headless"`
	Flags    map[string]any `toml:"flags"`
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: backendFile,
			Dir:     dataDir(),
			Key:     settings.StorageKey,
		},
		Server: ServerConfig{
			Addr:     defaultServerAddr,
			Viewport: placement.Viewport{Width: 1280, Height: 800},
		},
	}
}

// loadConfig reads the config file at path over the defaults. An empty path
// means the default location, which may be absent.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = configPath()
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, pgerrors.Wrap(pgerrors.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, pgerrors.Wrap(pgerrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case backendMemory, backendFile, backendRedis, backendMongo:
	default:
		return pgerrors.New(pgerrors.ErrCodeInvalidInput,
			"storage.backend must be one of memory, file, redis, mongo (got %q)", c.Storage.Backend)
	}
	if err := pgerrors.ValidateStorageKey(c.Storage.Key); err != nil {
		return err
	}
	if c.Storage.Profile != "" {
		if err := pgerrors.ValidateStorageKey(c.Storage.Profile); err != nil {
			return pgerrors.Wrap(pgerrors.ErrCodeInvalidKey, err, "storage.profile")
		}
	}
	return pgerrors.ValidateViewport(c.Server.Viewport.Width, c.Server.Viewport.Height)
}

// configPath returns the config file location: $PIXELGRID_CONFIG, else
// $XDG_CONFIG_HOME/pixelgrid/config.toml, else ~/.config/pixelgrid/config.toml.
func configPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appName+".toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// dataDir returns the file store directory using XDG standard (~/.local/share/pixelgrid/).
func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// profilePrefix is the key prefix of a named profile.
func profilePrefix(profile string) string {
	return "profile:" + profile + ":"
}

// openStore opens the configured backend, scoped to cfg.Profile when one is
// set.
func openStore(ctx context.Context, cfg StorageConfig, logger *log.Logger) (storage.Store, error) {
	store, err := openBackend(ctx, cfg, logger)
	if err != nil || cfg.Profile == "" {
		return store, err
	}
	logger.Debug("storage profile", "profile", cfg.Profile)
	return storage.NewScoped(store, profilePrefix(cfg.Profile)), nil
}

func openBackend(ctx context.Context, cfg StorageConfig, logger *log.Logger) (storage.Store, error) {
	switch cfg.Backend {
	case backendMemory:
		return storage.NewMemory(), nil
	case backendFile:
		return storage.NewFileStore(cfg.Dir)
	}

	file, err := storage.NewFileStore(cfg.Dir)
	if err != nil {
		return nil, err
	}

	var primary storage.Store
	switch cfg.Backend {
	case backendRedis:
		primary, err = storage.NewRedisStore(ctx, cfg.Redis)
	case backendMongo:
		primary, err = storage.NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, pgerrors.New(pgerrors.ErrCodeInvalidInput, "unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		logger.Warn("storage backend unavailable, using file store", "backend", cfg.Backend, "err", err)
		return file, nil
	}
	logger.Debug("storage opened", "backend", cfg.Backend, "fallback", file.Dir())
	return storage.NewFallback(primary, file, logger), nil
}
