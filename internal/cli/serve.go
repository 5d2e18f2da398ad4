package cli

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghrepos/internal/config"
	"github.com/matzehuels/ghrepos/internal/server"
	"github.com/matzehuels/ghrepos/pkg/settings"
)

// serveCommand creates the serve command hosting both adapters over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve shortcode and widget rendering over HTTP",
		Long: `Start an HTTP server that renders shortcodes and manages widget instances.

Routes:
  GET    /shortcode?url=URL        render the shortcode
  POST   /expand                   expand shortcodes in the request body
  GET    /widgets                  list widget instances (JSON)
  POST   /widgets                  create an instance from form fields title, github_url
  GET    /widgets/{id}             render an instance
  GET    /widgets/{id}/form        settings form for an instance
  POST   /widgets/{id}             update an instance
  DELETE /widgets/{id}             delete an instance
  GET    /assets/gh-repo-list.css  stylesheet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			r, err := c.newRenderer(cfg)
			if err != nil {
				return err
			}
			store, err := c.openStore(ctx, cfg, backend)
			if err != nil {
				return err
			}
			defer store.Close()

			printInfo("Serving on %s", StyleLink.Render("http://"+cfg.Server.Addr))
			return server.New(r, store, server.WithLogger(logger)).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&backend, "store", "", "settings backend ("+strings.Join(settings.Backends, "|")+")")

	return cmd
}
