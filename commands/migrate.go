package commands

import (
	"beach-review/driver"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// migrateCmd brings the schema up to date with the models
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := driver.ConnectDB(cfg)
		if err != nil {
			return err
		}
		defer driver.Close(db)

		if err := driver.Migrate(db); err != nil {
			return err
		}
		log.Infof("Schema migrated (%s)", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
