package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/staff-manager/cmd/empctl/output"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/infra/archive"
	infraRepo "github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	ucEmployee "github.com/BruksfildServices01/staff-manager/internal/usecase/employee"
)

var (
	exportOut     string
	exportArchive bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export employees as CSV",
	Long: `Write every employee as CSV to a file (or stdout), or upload it to the
configured S3 bucket with --archive.

Examples:
  empctl export --out employees.csv
  empctl export --archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		exportUC := ucEmployee.NewExportEmployees(infraRepo.NewStaffGormRepository(db))

		if exportArchive {
			if !cfg.ArchiveEnabled() {
				return fmt.Errorf("S3_BUCKET is not set")
			}
			sink := archive.NewS3Sink(archive.S3Config{
				Bucket:    cfg.S3Bucket,
				Region:    cfg.S3Region,
				Endpoint:  cfg.S3Endpoint,
				AccessKey: cfg.S3AccessKey,
				SecretKey: cfg.S3SecretKey,
			})
			res, err := ucEmployee.NewArchiveEmployees(exportUC, sink).Execute(ctx, policy.System())
			if err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "archived %d employees to %s", res.Rows, res.Location)
			return nil
		}

		if exportOut == "" || exportOut == "-" {
			_, err := exportUC.Execute(ctx, policy.System(), cmd.OutOrStdout())
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		rows, err := exportUC.Execute(ctx, policy.System(), f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		output.Success(cmd.OutOrStdout(), "wrote %d employees to %s", rows, exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportArchive, "archive", false, "Upload to the configured S3 bucket")
}
