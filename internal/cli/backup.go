// filepath: internal/cli/backup.go
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"teachermonitor/internal/audit"
	"teachermonitor/internal/logging"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/services"
	"teachermonitor/internal/shared"

	"github.com/spf13/cobra"
)

var exportBackupCmd = &cobra.Command{
	Use:   "export-backup",
	Short: "Write a full JSON snapshot of all data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackupService(func(svc services.BackupService) error {
			path, err := svc.ExportToFile()
			if err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", path)
			return nil
		})
	},
}

var importBackupCmd = &cobra.Command{
	Use:   "import-backup <file>",
	Short: "Replace all data with a JSON snapshot",
	Long:  `Replaces every table with the contents of a backup file. The import is atomic: a malformed file or failed insert leaves the current data untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !askYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), "This replaces ALL current data. Continue? [y/N]: ") {
			return shared.ErrorConfirmAborted
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open backup file: %w", err)
		}
		defer f.Close()

		return withBackupService(func(svc services.BackupService) error {
			if err := svc.Import(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Println("Backup imported.")
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(exportBackupCmd)
	RootCmd.AddCommand(importBackupCmd)
}

// withBackupService opens the database for the duration of one backup
// operation.
func withBackupService(fn func(svc services.BackupService) error) error {
	repo, err := repository.NewRepository(cfg, reactive.NewBroker(), logging.Log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		return err
	}
	if err := repo.ValidateSchema(); err != nil {
		return err
	}

	auditor := audit.NewLoggerAuditor(logging.Log, cfg.Logging.AuditEnabled)
	return fn(services.NewBackupService(repo, cfg.Export.Dir, auditor, logging.Log))
}

func askYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func askLiteral(in io.Reader, out io.Writer, prompt, literal string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(answer) == literal
}
