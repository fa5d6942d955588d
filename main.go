package main

import (
	"fmt"
	"os"

	"github.com/ishanbagra18/artfolio-server/config"
	"github.com/ishanbagra18/artfolio-server/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile    string
	configFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "artfolio",
	Short: "Artfolio portfolio CMS server",
	Long: `Artfolio serves the JSON API behind the artist portfolio site: artist
accounts and portfolios, client feedback, the blog, contact messages and the
admin dashboard.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile, configFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to load (skipped when missing)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "YAML config file (skipped when missing)")

	cleanupCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report duplicates without deleting them")

	rootCmd.AddCommand(serveCmd, setupIndexesCmd, cleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
