package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// clearCommand creates the command that deletes a saved layout.
func (c *CLI) clearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved layout in the slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, c.cfg.Storage.Slot); err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("slot deleted", "slot", c.cfg.Storage.Slot)
			printSuccess(cmd.OutOrStdout(), "Cleared slot %q", c.cfg.Storage.Slot)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	return cmd
}
