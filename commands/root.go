package commands

import (
	"fmt"
	"os"

	"beach-review/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel string
	dbDriver string
	dbDSN    string
)

var cfg *config.Config

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "beach",
	Short: "Beach reviews API",
	Long: `Beach reviews API: browse counties and beaches, post and like reviews.

Configuration is read from the environment and an optional .env file.
Flags override the matching environment variables.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if dbDriver != "" {
			cfg.Database.Driver = dbDriver
		}
		if dbDSN != "" {
			cfg.Database.DSN = dbDSN
		}
		cfg.SetupLogging()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite, mysql or postgres (overrides BEACH_DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "Database DSN (overrides BEACH_DB_DSN)")
}
