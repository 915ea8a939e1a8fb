package commands

import (
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staff-manager/cmd/empctl/output"
	"github.com/BruksfildServices01/staff-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/staff-manager/internal/db"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
)

var (
	// Global flags
	dbDriver string
	dbURL    string
)

var rootCmd = &cobra.Command{
	Use:   "empctl",
	Short: "Operator tool for the staff manager",
	Long: `empctl runs maintenance tasks against the staff manager database.

It reads the same environment (and optional .env file) as the API server.
--driver and --db override DATABASE_DRIVER and DATABASE_URL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "Database driver (postgres, mysql, sqlite)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL")

	rootCmd.AddCommand(migrateCmd, seedCmd, createUserCmd, exportCmd)
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbURL != "" {
		cfg.DBUrl = dbURL
	}
	timezone.Configure(cfg.Timezone)
	return cfg
}

// openDB connects and migrates.
func openDB() (*config.Config, *gorm.DB, error) {
	cfg := loadConfig()
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
