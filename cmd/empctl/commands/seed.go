package commands

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/staff-manager/cmd/empctl/output"
	infraRepo "github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	"github.com/BruksfildServices01/staff-manager/internal/seed"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default accounts and employee profiles",
	Long: `Upserts the default accounts (admin and four staff users) and their
employee profiles. Existing accounts get their password and role reset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}

		res, err := seed.Run(
			cmd.Context(),
			infraRepo.NewStaffGormRepository(db),
			account.NewBcryptHasher(cfg.BcryptCost),
			seed.Defaults(),
		)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		output.Success(out, "seed complete")
		output.Muted(out, "users: %d created, %d updated", res.UsersCreated, res.UsersUpdated)
		output.Muted(out, "employees: %d created, %d updated", res.EmployeesCreated, res.EmployeesUpdated)
		if res.UsersUpdated > 0 {
			output.Warning(out, "%d existing accounts had their password and role reset", res.UsersUpdated)
		}
		return nil
	},
}
