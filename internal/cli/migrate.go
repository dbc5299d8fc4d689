// filepath: internal/cli/migrate.go
package cli

import (
	"fmt"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/repository"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tools",
	Long:  `Manage database schema versions. Use subcommands 'up', 'down', or 'status'.`,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Migrate the database to the most recent version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration("up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the database by one version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration("down")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the schema version of the current database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration("status")
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	migrateCmd.AddCommand(statusCmd)
}

func runMigration(command string) error {
	// The root command's PersistentPreRunE has already loaded the 'cfg'
	// global variable.
	repo, err := repository.NewRepository(cfg, reactive.NewBroker(), logging.Log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	logging.Log.Infof("Running migration command: %s", command)

	switch command {
	case "up":
		err = repo.MigrateUp()
	case "down":
		err = repo.MigrateDown()
	case "status":
		var version int64
		version, err = repo.MigrationVersion()
		if err == nil {
			fmt.Printf("Database schema version: %d\n", version)
			if verr := repo.ValidateSchema(); verr != nil {
				fmt.Printf("Schema check: %v\n", verr)
			} else {
				fmt.Println("Schema check: up to date")
			}
		}
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logging.Log.Info("Migration operation completed successfully.")
	return nil
}
