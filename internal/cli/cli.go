// Package cli implements the ghrepos command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghrepos/internal/config"
	"github.com/matzehuels/ghrepos/pkg/buildinfo"
	"github.com/matzehuels/ghrepos/pkg/display"
	"github.com/matzehuels/ghrepos/pkg/integrations/github"
	"github.com/matzehuels/ghrepos/pkg/settings"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ghrepos"

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
	// newProvider builds the repository source; tests replace it.
	newProvider func(cfg config.Config) display.RepositoryProvider
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		newProvider: githubProvider,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ghrepos renders a GitHub user's public repositories as HTML",
		Long: `ghrepos fetches the public repositories of a GitHub user and renders them as an
HTML list, either through the [github_repos url="..."] shortcode or through
configurable sidebar widgets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerHooks(c.Logger)
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvPath+" or ~/.config/ghrepos/config.toml)")

	root.AddCommand(c.shortcodeCommand())
	root.AddCommand(c.expandCommand())
	root.AddCommand(c.widgetCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cssCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("Config loaded", "api", cfg.GitHub.APIURL, "store", cfg.Settings.Backend)
	return cfg, nil
}

func githubProvider(cfg config.Config) display.RepositoryProvider {
	return github.NewClientWithBaseURL(cfg.GitHub.APIURL, cfg.GitHub.UserAgent)
}

// newRenderer builds the renderer shared by every presentation command.
func (c *CLI) newRenderer(cfg config.Config) (*display.Renderer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return display.New(c.newProvider(cfg),
		display.WithDateFormat(cfg.Display.DateFormat),
		display.WithLocation(loc),
		display.WithLogger(c.Logger),
	), nil
}

// openStore opens the configured settings backend; a non-empty backend
// overrides the config file.
func (c *CLI) openStore(ctx context.Context, cfg config.Config, backend string) (settings.Store, error) {
	opts := cfg.StoreOptions()
	if backend != "" {
		opts.Backend = backend
	}
	store, err := settings.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Settings store opened", "backend", opts.Backend, "location", opts.String())
	return store, nil
}

// stderrIsTerminal reports whether progress output should be animated.
func stderrIsTerminal() bool {
	return isTerminal(os.Stderr.Fd())
}
