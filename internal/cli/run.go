package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/stagelayout"
	"github.com/phanxgames/stagelayout/store"
)

// runCommand creates the command that opens the editor window.
func (c *CLI) runCommand() *cobra.Command {
	var (
		scriptPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the layout editor",
		Long: `Open the layout editor window. The layout saved in the configured slot
is loaded on start. With --watch, changes made to the slot file by another
process are reloaded into the open editor (file backend only).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			ed := c.newEditor(ctx, st)
			if loaded, err := ed.Load(ctx); err != nil {
				logger.Warn("saved layout not loaded", "slot", c.cfg.Storage.Slot, "err", err)
			} else if loaded {
				logger.Info("layout loaded", "slot", c.cfg.Storage.Slot, "tokens", ed.Canvas().Len())
			}

			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := stagelayout.LoadScript(data)
				if err != nil {
					return fmt.Errorf("script %s: %w", scriptPath, err)
				}
				ed.SetScriptRunner(runner)
			}

			if watch {
				fs, ok := st.(*store.FileStore)
				if !ok {
					logger.Warn("--watch needs the file backend", "backend", c.cfg.Storage.Backend)
				} else {
					stop, err := watchSlot(ctx, fs, c.cfg.Storage.Slot, ed, logger)
					if err != nil {
						return err
					}
					defer stop()
				}
			}

			done := make(chan struct{})
			defer close(done)
			go watchQuit(ctx, done, ed)

			w, h := ed.ScreenSize()
			if c.cfg.Window.Width > 0 && c.cfg.Window.Height > 0 {
				w, h = c.cfg.Window.Width, c.cfg.Window.Height
			}
			ebiten.SetWindowSize(w, h)
			ebiten.SetWindowTitle(c.cfg.Window.Title)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

			if err := ebiten.RunGame(ed); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "play a JSON session script")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the slot when its file changes")

	return cmd
}

// watchQuit asks q to quit when ctx is cancelled. It returns without doing
// so once done is closed.
func watchQuit(ctx context.Context, done <-chan struct{}, q interface{ RequestQuit() }) {
	select {
	case <-ctx.Done():
		q.RequestQuit()
	case <-done:
	}
}
