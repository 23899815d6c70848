package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phanxgames/stagelayout"
)

// showCommand creates the command that prints a saved layout.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved layout as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			doc, ok, err := c.readDocument(ctx, st)
			if err != nil {
				return err
			}
			if !ok {
				printInfo(out, "Slot %q is empty", c.cfg.Storage.Slot)
				return nil
			}
			tokens, err := doc.Tokens()
			if err != nil {
				return err
			}

			printTitle(out, c.cfg.Storage.Slot)
			printKeyValue(out, "Hall", stagelayout.LookupHall(doc.Hall).Label)
			printKeyValue(out, "Items", strconv.Itoa(len(tokens)))

			rows := make([][]string, 0, len(tokens))
			for i, t := range tokens {
				label := ""
				if t.LabelVisible {
					label = t.Label
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					t.Icon,
					label,
					stagelayout.Px(t.X),
					stagelayout.Px(t.Y),
					t.Style.Fill,
				})
			}
			if len(rows) > 0 {
				printTable(out, []string{"#", "Icon", "Label", "Left", "Top", "Color"}, rows)
			}

			canvas := stagelayout.NewCanvas()
			canvas.Insert(tokens...)
			printInfo(out, "%s", canvas.Summary())
			return nil
		},
	}
}
