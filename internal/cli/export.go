package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/stagelayout"
)

// exportCommand creates the command that renders a saved layout to PNG
// without opening a window.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the saved layout to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

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
				return fmt.Errorf("slot %q is empty", c.cfg.Storage.Slot)
			}

			if output == "" {
				output = filepath.Join(c.cfg.Export.Dir, stagelayout.ExportFilename)
			}
			img, err := stagelayout.Rasterize(doc, c.cfg.Stage.Width, c.cfg.Stage.Height)
			if err != nil {
				return err
			}
			if err := stagelayout.WritePNG(output, img); err != nil {
				return err
			}
			logger.Debug("exported", "slot", c.cfg.Storage.Slot, "items", len(doc.Items), "path", output)

			out := cmd.OutOrStdout()
			printSuccess(out, "Exported %d items", len(doc.Items))
			printFile(out, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <export.dir>/"+stagelayout.ExportFilename+")")

	return cmd
}
