package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zhubert/cardtray/internal/app"
	"github.com/zhubert/cardtray/internal/clipboard"
	"github.com/zhubert/cardtray/internal/config"
	"github.com/zhubert/cardtray/internal/logger"
)

// rootOptions holds the flags of the root command
type rootOptions struct {
	debug     bool
	quiet     bool
	catalog   string
	secondary string
	capacity  int
}

// NewRootCmd builds the cardtray command tree
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cardtray",
		Short: "Pick cards from an image catalog into two trays",
		Long: `Cardtray shows a catalog of card images as a gallery. Left-click a card
to add a copy to the left tray, right-click to add it to the right tray,
and click a tray member to remove it.

Every frame keeps its own trays. Use "cardtray update" to refresh the
support card catalog from the wiki.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if opts.quiet {
				logger.SetDebug(false)
			} else if opts.debug {
				logger.SetDebug(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, version)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Reduce logging to info level only")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Catalog file or URL for the first frame")
	cmd.Flags().StringVar(&opts.secondary, "secondary", "", "Catalog file or URL for the second frame")
	cmd.Flags().IntVar(&opts.capacity, "capacity", 0, "Tray capacity used for the percentage display")

	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newCleanCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions, version string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := applyOverrides(cfg, opts, os.Getenv); err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	if err := clipboard.Init(); err != nil {
		logger.WithComponent("cmd").Warn("clipboard unavailable", "error", err)
	}

	m := app.New(cfg, version)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// applyOverrides layers the environment and then the flags over the
// saved config. Overrides are not saved.
func applyOverrides(cfg *config.Config, opts *rootOptions, getenv func(string) string) error {
	if err := cfg.ApplyEnv(getenv); err != nil {
		return err
	}

	frames := cfg.GetFrames()
	if opts.catalog != "" && len(frames) > 0 {
		cfg.OverrideCatalog(frames[0].ID, opts.catalog)
	}
	if opts.secondary != "" && len(frames) > 1 {
		cfg.OverrideCatalog(frames[1].ID, opts.secondary)
	}
	if opts.capacity < 0 {
		return fmt.Errorf("--capacity must be positive, got %d", opts.capacity)
	}
	if opts.capacity > 0 {
		cfg.OverrideCapacity(opts.capacity)
	}
	return nil
}
