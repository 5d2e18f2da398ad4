package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghrepos/pkg/display"
)

// cssCommand prints the stylesheet for the rendered list.
func (c *CLI) cssCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Print the " + display.StylesheetName + " stylesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(display.Stylesheet())
			return err
		},
	}
}
