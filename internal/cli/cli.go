// Package cli implements the stagelayout command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/stagelayout"
	"github.com/phanxgames/stagelayout/internal/config"
	"github.com/phanxgames/stagelayout/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	slot       string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "stagelayout",
		Short: "Arrange orchestra instruments on a stage",
		Long: `stagelayout is a small editor for orchestra stage plans. Place
conductor, chairs, music stands and instruments on a stage, label them, and
save or export the arrangement as a PNG.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/stagelayout/config.toml)")
	root.PersistentFlags().StringVar(&c.slot, "slot", "", "layout slot to use (overrides storage.slot)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.kindsCommand())

	return root
}

// preRun loads the config and attaches the logger to the command context.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.verbose {
		c.Logger.SetLevel(log.DebugLevel)
	} else {
		c.Logger.SetLevel(cfg.LogLevel())
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if c.slot != "" {
		cfg.Storage.Slot = c.slot
	}
	c.Logger.Debug("config loaded", "path", path, "backend", cfg.Storage.Backend, "slot", cfg.Storage.Slot)
	return cfg, nil
}

// openStore opens the configured layout store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, c.cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.cfg.Storage.Backend, err)
	}
	return st, nil
}

// readDocument fetches and decodes the layout in the configured slot.
// ok is false when the slot is missing or holds an empty value.
func (c *CLI) readDocument(ctx context.Context, st store.Store) (doc stagelayout.Document, ok bool, err error) {
	data, ok, err := st.Get(ctx, c.cfg.Storage.Slot)
	if err != nil || !ok || len(data) == 0 {
		return doc, false, err
	}
	doc, err = stagelayout.DecodeDocument(data)
	if err != nil {
		return doc, false, fmt.Errorf("slot %q: %w", c.cfg.Storage.Slot, err)
	}
	return doc, true, nil
}

// newEditor builds an editor from the loaded config.
func (c *CLI) newEditor(ctx context.Context, st store.Store) *stagelayout.Editor {
	return stagelayout.NewEditor(stagelayout.Options{
		StageWidth:  c.cfg.Stage.Width,
		StageHeight: c.cfg.Stage.Height,
		TokenSize:   c.cfg.Stage.TokenSize,
		Snap:        c.cfg.Stage.Snap,
		Hall:        c.cfg.Stage.Hall,
		Store:       st,
		Slot:        c.cfg.Storage.Slot,
		ExportDir:   c.cfg.Export.Dir,
		Logger:      c.Logger,
		Context:     ctx,
	})
}
