package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/stagelayout"
)

// kindsCommand creates the command that lists the instrument palette.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the instrument kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(stagelayout.Kinds()))
			for _, k := range stagelayout.Kinds() {
				shape := "square"
				if k.Shape == stagelayout.ShapeCircle {
					shape = "circle"
				}
				rows = append(rows, []string{k.Key, k.Icon, k.ButtonLabel, k.Color, shape})
			}
			printTable(cmd.OutOrStdout(), []string{"Key", "Icon", "Name", "Color", "Shape"}, rows)
			return nil
		},
	}
}
