package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgrid/pkg/buildinfo"
	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/settings"
	"github.com/matzehuels/pixelgrid/pkg/storage"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	profile    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pixelgrid draws a baseline and column grid over web pages",
		Long: `Pixelgrid renders a translucent layout grid (baseline rows, inner and outer
columns) as a CSS overlay, and keeps it in sync with a live page or a settings API.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pixelgrid/config.toml)")
	root.PersistentFlags().StringVar(&c.profile, "profile", "", "settings profile (overrides storage.profile)")

	root.AddCommand(c.cssCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.injectCommand())
	root.AddCommand(c.pushCommand())
	root.AddCommand(c.panelCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Environment
// =============================================================================

// env is the configuration and settings repository shared by commands.
type env struct {
	cfg   Config
	store storage.Store
	repo  *settings.Repository
}

func (e *env) Close() error { return e.store.Close() }

// openEnv loads the config and opens the settings store.
func (c *CLI) openEnv(ctx context.Context) (*env, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.profile != "" {
		cfg.Storage.Profile = c.profile
		if err := cfg.validate(); err != nil {
			return nil, err
		}
	}
	store, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	repo := settings.NewRepository(store,
		settings.WithKey(cfg.Storage.Key),
		settings.WithLogger(logger),
	)
	return &env{cfg: cfg, store: store, repo: repo}, nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// applyAssignments applies "field=value" pairs to s in order.
func applyAssignments(s settings.GridSettings, pairs []string) (settings.GridSettings, error) {
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return s, pgerrors.New(pgerrors.ErrCodeInvalidInput, "expected field=value, got %q", pair)
		}
		var err error
		if s, err = s.Set(strings.TrimSpace(field), strings.TrimSpace(value)); err != nil {
			return s, err
		}
	}
	return s, nil
}
