package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghrepos/internal/config"
	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
	"github.com/matzehuels/ghrepos/pkg/integrations/github"
	"github.com/matzehuels/ghrepos/pkg/settings"
	"github.com/matzehuels/ghrepos/pkg/widget"
)

// widgetCommand groups the widget instance subcommands.
func (c *CLI) widgetCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Manage " + widget.Name + " instances",
		Long: `Create, edit and render instances of the "` + widget.Name + `".

` + widget.Description + `. Each instance stores a title and a GitHub
profile URL in the configured settings backend.`,
	}

	cmd.PersistentFlags().StringVar(&backend, "store", "", "settings backend ("+strings.Join(settings.Backends, "|")+")")

	// withStore runs fn against an open store and closes it afterwards.
	withStore := func(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, store settings.Store) error) error {
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		store, err := c.openStore(ctx, cfg, backend)
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(ctx, cfg, store)
	}

	cmd.AddCommand(c.widgetAddCommand(withStore))
	cmd.AddCommand(c.widgetListCommand(withStore))
	cmd.AddCommand(c.widgetShowCommand(withStore))
	cmd.AddCommand(c.widgetSetCommand(withStore))
	cmd.AddCommand(c.widgetEditCommand(withStore))
	cmd.AddCommand(c.widgetRenderCommand(withStore))
	cmd.AddCommand(c.widgetFormCommand(withStore))
	cmd.AddCommand(c.widgetDeleteCommand(withStore))

	return cmd
}

type storeRunner func(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, store settings.Store) error) error

func (c *CLI) widgetAddCommand(withStore storeRunner) *cobra.Command {
	var id, title, url string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a widget instance",
		Example: `  ghrepos widget add --title "My Projects" --url https://github.com/octocat
  ghrepos widget add --id sidebar --url https://github.com/octocat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store settings.Store) error {
				if id == "" {
					id = settings.NewID()
				} else if _, err := store.Get(ctx, id); err == nil {
					return apperrors.New(apperrors.ErrCodeWidgetExists, "widget %q already exists; use 'widget set' to change it", id)
				} else if !errors.Is(err, settings.ErrNotFound) {
					return err
				}
				if !cmd.Flags().Changed("title") {
					title = widget.DefaultTitle
				}
				cfg := widget.Update(widget.Config{Title: title, GitHubURL: url}, widget.Config{})
				if err := store.Set(ctx, id, cfg); err != nil {
					return err
				}
				warnIfNotProfile(cfg)
				printSuccess("Created widget %s", StyleValue.Render(id))
				printNextStep("Render it", appName+" widget render "+id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "instance ID (default: random UUID)")
	cmd.Flags().StringVar(&title, "title", "", "widget title (default \""+widget.DefaultTitle+"\")")
	cmd.Flags().StringVar(&url, "url", "", "GitHub profile URL")

	return cmd
}

func (c *CLI) widgetListCommand(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List widget instances",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store settings.Store) error {
				list, err := store.List(ctx)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No widgets configured")
					printNextStep("Create one", appName+" widget add --url https://github.com/username")
					return nil
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), widgetTable(list, time.Now()))
				return err
			})
		},
	}
}

func (c *CLI) widgetShowCommand(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a widget instance's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store settings.Store) error {
				cfg, err := getWidget(ctx, store, args[0])
				if err != nil {
					return err
				}
				user := github.ExtractUsername(cfg.GitHubURL)
				if user == "" {
					user = "—"
				}
				out := cmd.OutOrStdout()
				printKeyValue(out, "ID", args[0])
				printKeyValue(out, "Title", cfg.Title)
				printKeyValue(out, "GitHub URL", cfg.GitHubURL)
				printKeyValue(out, "User", user)
				return nil
			})
		},
	}
}

func (c *CLI) widgetSetCommand(withStore storeRunner) *cobra.Command {
	var title, url string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change a widget instance's settings",
		Long: `Change the title and/or GitHub URL of a widget instance.

Only the flags given are changed. Values are sanitized the same way as when
the settings form is saved.`,
		Example: `  ghrepos widget set sidebar --url https://github.com/torvalds`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titleSet, urlSet := cmd.Flags().Changed("title"), cmd.Flags().Changed("url")
			if !titleSet && !urlSet {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "nothing to change: pass --title or --url")
			}
			return withStore(cmd, func(ctx context.Context, _ config.Config, store settings.Store) error {
				old, err := getWidget(ctx, store, args[0])
				if err != nil {
					return err
				}
				next := *old
				if titleSet {
					next.Title = title
				}
				if urlSet {
					next.GitHubURL = url
				}
				cfg := widget.Update(next, *old)
				if err := store.Set(ctx, args[0], cfg); err != nil {
					return err
				}
				warnIfNotProfile(cfg)
				printSuccess("Updated widget %s", StyleValue.Render(args[0]))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "widget title")
	cmd.Flags().StringVar(&url, "url", "", "GitHub profile URL")

	return cmd
}

func (c *CLI) widgetEditCommand(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a widget instance interactively",
		Long: `Open an interactive settings form for a widget instance.

An unknown ID starts a new instance with the default title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := settings.ValidateID(id); err != nil {
				return err
			}
			return withStore(cmd, func(ctx context.Context, _ config.Config, store settings.Store) error {
				var old widget.Config
				stored, err := store.Get(ctx, id)
				switch {
				case err == nil:
					old = *stored
				case !errors.Is(err, settings.ErrNotFound):
					return err
				}

				p := tea.NewProgram(NewWidgetFormModel(id, old),
					tea.WithContext(ctx),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(statusOut),
				)
				result, err := p.Run()
				if err != nil {
					return err
				}
				m := result.(WidgetFormModel)
				if !m.Saved {
					printInfo("Cancelled")
					return nil
				}

				cfg := widget.Update(m.Config(), old)
				if err := store.Set(ctx, id, cfg); err != nil {
					return err
				}
				warnIfNotProfile(cfg)
				printSuccess("Saved widget %s", StyleValue.Render(id))
				return nil
			})
		},
	}
}

func (c *CLI) widgetRenderCommand(withStore storeRunner) *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a widget instance as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg config.Config, store settings.Store) error {
				wcfg, err := getWidget(ctx, store, args[0])
				if err != nil {
					return err
				}
				r, err := c.newRenderer(cfg)
				if err != nil {
					return err
				}
				layout := widget.DefaultLayout
				if bare {
					layout = widget.Layout{}
				}

				prog := startProgress(ctx, "Rendered widget", "id", args[0])
				var html string
				withSpinner(ctx, "Fetching repositories...", func() {
					html = widget.New(r, layout).Render(ctx, *wcfg)
				})
				if err := ctx.Err(); err != nil {
					return err
				}
				prog.done("bytes", len(html))

				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "omit the surrounding sidebar markup")

	return cmd
}

func (c *CLI) widgetFormCommand(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "form <id>",
		Short: "Print the HTML settings form of a widget instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg config.Config, store settings.Store) error {
				var wcfg widget.Config
				stored, err := store.Get(ctx, args[0])
				switch {
				case err == nil:
					wcfg = *stored
				case !errors.Is(err, settings.ErrNotFound):
					return err
				}
				r, err := c.newRenderer(cfg)
				if err != nil {
					return err
				}
				form, err := widget.New(r, widget.DefaultLayout).Form(args[0], wcfg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), form)
				return err
			})
		},
	}
}

func (c *CLI) widgetDeleteCommand(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a widget instance",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store settings.Store) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted widget %s", StyleValue.Render(args[0]))
				return nil
			})
		},
	}
}

// getWidget loads an instance, reporting a missing one as WIDGET_NOT_FOUND.
func getWidget(ctx context.Context, store settings.Store, id string) (*widget.Config, error) {
	cfg, err := store.Get(ctx, id)
	if errors.Is(err, settings.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrCodeWidgetNotFound, err, "no widget with id %q", id)
	}
	return cfg, err
}

// warnIfNotProfile flags configurations that will render the invalid-URL message.
func warnIfNotProfile(cfg widget.Config) {
	if github.ExtractUsername(cfg.GitHubURL) == "" {
		printWarning("%q is not a GitHub profile URL; the widget will show \"Invalid GitHub URL.\"", cfg.GitHubURL)
	}
}
