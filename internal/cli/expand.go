package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
	"github.com/matzehuels/ghrepos/pkg/shortcode"
)

// expandCommand creates the expand command for processing whole documents.
func (c *CLI) expandCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: "Expand shortcodes in a document",
		Long: `Replace every [` + shortcode.Tag + ` ...] directive in a document with its rendered HTML.

Reads from file or stdin. A directive written as [[` + shortcode.Tag + ` ...]] is kept
literally, minus the outer brackets.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			r, err := c.newRenderer(cfg)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if errors.Is(err, fs.ErrNotExist) {
					return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file %s", args[0])
				}
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			content, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			prog := startProgress(ctx, "Expanded document", "input_bytes", len(content))
			var expanded string
			withSpinner(ctx, "Expanding shortcodes...", func() {
				expanded = shortcode.New(r).Expand(ctx, string(content))
			})
			if err := ctx.Err(); err != nil {
				return err
			}
			prog.done("output_bytes", len(expanded))

			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), expanded)
				return err
			}
			if err := os.WriteFile(output, []byte(expanded), 0644); err != nil {
				return err
			}
			printSuccess("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
