// filepath: internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"teachermonitor/internal/api/handlers"
	"teachermonitor/internal/audit"
	"teachermonitor/internal/config"
	"teachermonitor/internal/housekeeping"
	"teachermonitor/internal/httpserver"
	"teachermonitor/internal/initconfig"
	"teachermonitor/internal/logging"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/render"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/services"

	"github.com/spf13/cobra"
)

var (
	// Version info
	Version   = "1.0.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile      string
	port         int
	logLevel     string
	dbPath       string
	exportDir    string
	initConfig   string
	auditEnabled bool
)

// RootCmd represents the base command when called without any
// subcommands. It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "teachermonitor",
	Short: "Teacher monitoring records",
	Long:  `A local record-keeping server for classroom supervision, book checking, and syllabus coverage reports, with PDF export and JSON backups.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: TM_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: TM_LOG_LEVEL)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database file. (Env: TM_DATABASE_PATH)")
	RootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", "", "Directory for exported PDFs and backups. (Env: TM_EXPORT_DIR)")

	// Server-specific flags
	RootCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: TM_PORT)")
	RootCmd.Flags().StringVar(&initConfig, "init_config", "", "Path to a TOML file for one-time seeding of teachers and school settings. (Env: TM_INIT_CONFIG)")
	RootCmd.Flags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: TM_AUDIT_ENABLED=true)")
}

// initializeConfig loads and overrides configuration values: file,
// then environment, then flags, then defaults for whatever is left.
func initializeConfig(cmd *cobra.Command) error {
	if envPath := os.Getenv("TM_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Rely on defaults/flags when there is no config file.
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	applyOverrides(cfg, cmd)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)
	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) {
	getEnv := func(key string) string {
		return os.Getenv(key)
	}

	// --- 1. Environment Variables ---
	if v := getEnv("TM_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("TM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("TM_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("TM_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := getEnv("TM_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}

	// --- 2. CLI Flags (Take precedence) ---
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if exportDir != "" {
		c.Export.Dir = exportDir
	}
	// Check if flag was explicitly set
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}
	if initConfig == "" {
		if v := getEnv("TM_INIT_CONFIG"); v != "" {
			initConfig = v
		}
	}

	// --- 3. Defaults ---
	c.ApplyDefaults()
}

// runServer contains the logic to start the HTTP server with graceful
// shutdown.
func runServer() error {
	broker := reactive.NewBroker()

	repo, err := repository.NewRepository(cfg, broker, logging.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// --- Conditional auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return err
	}

	// Service Initialization
	infoService := services.NewInfoService(Version, StartTime)
	teacherService := services.NewTeacherService(repo)
	settingsService := services.NewSettingsService(repo)
	loggerAuditor := audit.NewLoggerAuditor(logging.Log, cfg.Logging.AuditEnabled)
	backupService := services.NewBackupService(repo, cfg.Export.Dir, loggerAuditor, logging.Log)

	registry := render.NewRegistry(logging.Log)
	exporter := services.NewExporter(registry, settingsService, cfg.Export.Dir, logging.Log)

	supervision := services.NewReportService(services.SupervisionKind(), repo, exporter, logging.Log)
	bookChecking := services.NewReportService(services.BookCheckingKind(), repo, exporter, logging.Log)
	workCoverage := services.NewReportService(services.WorkCoverageKind(), repo, exporter, logging.Log)

	// Keep the branding cache coherent with imports and clears.
	settingsWatch := settingsService.Watch(broker, logging.Log)
	defer settingsWatch.Close()

	housekeepingService := housekeeping.NewService(cfg.Export.Dir, time.Duration(cfg.Export.RetentionDays)*24*time.Hour, logging.Log)
	housekeepingService.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	if initConfig != "" {
		logging.Log.Infof("Found init_config, running initialization from: %s", initConfig)
		initconfig.Run(teacherService, settingsService, initConfig)
	}

	h := handlers.NewHandlers(
		infoService,
		teacherService,
		settingsService,
		backupService,
		supervision,
		bookChecking,
		workCoverage,
		cfg,
	)

	r := httpserver.SetupRouter(h)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server starting on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	housekeepingService.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
