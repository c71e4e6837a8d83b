package commands

import (
	"time"

	"beach-review/driver"
	"beach-review/seed"
	"beach-review/store"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	demoUsers int
	demoSeed  int64
)

// seedCmd loads reference data and optional demo content
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load counties and beaches, optionally with demo reviews",
	Long: `Load the county and beach reference data. Existing reference data is left alone.

Examples:
  beach seed                    # Counties and beaches only
  beach seed --demo-users 20    # Plus 20 fake users with reviews and likes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := driver.ConnectDB(cfg)
		if err != nil {
			return err
		}
		defer driver.Close(db)

		if err := driver.Migrate(db); err != nil {
			return err
		}

		counties, beaches, err := seed.Places(cmd.Context(), db)
		if err != nil {
			return err
		}
		log.Infof("Inserted %d counties and %d beaches", counties, beaches)

		if demoUsers > 0 {
			return seed.Demo(cmd.Context(), store.New(db), demoSeed, demoUsers)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&demoUsers, "demo-users", 0, "Number of fake users (each writes one review)")
	seedCmd.Flags().Int64Var(&demoSeed, "demo-seed", time.Now().UnixNano(), "Random seed for demo data")
	rootCmd.AddCommand(seedCmd)
}
