package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghrepos/pkg/shortcode"
)

// shortcodeCommand creates the shortcode command for rendering one directive.
func (c *CLI) shortcodeCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "shortcode [attributes]",
		Short: "Render the [" + shortcode.Tag + "] shortcode",
		Long: `Render the [` + shortcode.Tag + `] shortcode for a GitHub profile URL.

Attributes may be given in directive syntax as arguments or through --url,
which takes precedence. The HTML fragment is written to stdout.`,
		Example: `  ghrepos shortcode --url https://github.com/octocat
  ghrepos shortcode 'url="https://github.com/octocat"'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			r, err := c.newRenderer(cfg)
			if err != nil {
				return err
			}

			attrs := shortcode.ParseAttrs(strings.Join(args, " "))
			if cmd.Flags().Changed("url") {
				attrs["url"] = url
			}

			ctx := cmd.Context()
			prog := startProgress(ctx, "Rendered shortcode", "url", attrs["url"])
			var html string
			withSpinner(ctx, "Fetching repositories...", func() {
				html = shortcode.New(r).Render(ctx, attrs)
			})
			if err := ctx.Err(); err != nil {
				return err
			}
			prog.done("bytes", len(html))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "GitHub profile URL (e.g. https://github.com/octocat)")

	return cmd
}
