// filepath: internal/cli/reset.go
package cli

import (
	"bufio"
	"fmt"

	"teachermonitor/internal/services"
	"teachermonitor/internal/shared"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored data",
	Long:  `Wipes every table (teachers, all reports, settings) in one transaction. There is no undo; consider export-backup first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// One buffered reader for both prompts, so the first read does
		// not swallow the second answer.
		in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()

		if !askYesNo(in, out, "Delete ALL data? This cannot be undone. [y/N]: ") {
			return shared.ErrorConfirmAborted
		}
		if !askLiteral(in, out, `Type "DELETE" to confirm: `, "DELETE") {
			return shared.ErrorConfirmAborted
		}

		return withBackupService(func(svc services.BackupService) error {
			if err := svc.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All data cleared.")
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(resetCmd)
}
