package commands

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/staff-manager/cmd/empctl/output"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	infraRepo "github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
)

var (
	newUsername string
	newPassword string
	newRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account",
	Long: `Create an account as the system administrator.

Examples:
  empctl create-user --username ama --password secret
  empctl create-user --username root --password secret --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}

		uc := account.NewRegisterUser(
			infraRepo.NewStaffGormRepository(db),
			account.NewBcryptHasher(cfg.BcryptCost),
		)
		u, err := uc.Execute(cmd.Context(), policy.System(), account.RegisterInput{
			Username: newUsername,
			Password: newPassword,
			Role:     newRole,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		output.Success(out, "created %s (id %d, role %s)", u.Username, u.ID, u.Role)
		if u.IsAdmin() {
			output.Info(out, "%s has administrator privileges", u.Username)
		}
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&newUsername, "username", "", "Username (required)")
	createUserCmd.Flags().StringVar(&newPassword, "password", "", "Password (required)")
	createUserCmd.Flags().StringVar(&newRole, "role", "", "Role: admin or user (default user, admin on an empty database)")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}
