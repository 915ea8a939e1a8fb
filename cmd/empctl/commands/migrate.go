package commands

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/staff-manager/cmd/empctl/output"
	dbpkg "github.com/BruksfildServices01/staff-manager/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		db, err := dbpkg.Open(cfg)
		if err != nil {
			return err
		}
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}

		output.Success(cmd.OutOrStdout(), "schema up to date (%s)", cfg.DBDriver)
		return nil
	},
}
