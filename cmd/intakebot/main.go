package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kekarehab/intakebot/internal/api"
	"github.com/kekarehab/intakebot/internal/dialog"
	"github.com/kekarehab/intakebot/internal/notify"
	"github.com/kekarehab/intakebot/internal/report"
	"github.com/kekarehab/intakebot/internal/scheduler"
	"github.com/kekarehab/intakebot/internal/store"
	"github.com/kekarehab/intakebot/internal/twiliosms"
	"github.com/kekarehab/intakebot/internal/util"
)

// Default configuration constants
const (
	// DefaultDataDir is the default directory for intake bot data
	DefaultDataDir = "/var/lib/intakebot"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Build the store
	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Build the notification channels
	notifier := buildNotifier(config)

	// Wire the conversation engine
	engine := dialog.NewEngine(st, notifier)

	// Schedule the weekly analytics report
	sched := scheduler.NewScheduler()
	defer sched.Stop()
	gen := report.NewGenerator(st, notifier)
	reportCron := *flags.reportCron
	if reportCron == "" {
		reportCron = scheduler.DefaultReportSchedule
	}
	if err := sched.AddJob(reportCron, gen.RunWeekly); err != nil {
		slog.Error("Failed to schedule analytics report", "error", err, "cron", reportCron)
		os.Exit(1)
	}

	// Start the API server
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(engine, st, buildAPIOptions(config, flags)...)
	slog.Info("Bootstrapping intake bot", "addr", *flags.apiAddr, "report_cron", reportCron)
	if err := srv.Run(ctx); err != nil {
		slog.Error("Intake bot failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Intake bot exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL      string
	DataDir          string
	APIAddr          string
	AdminToken       string
	AnalyticsEnabled bool
	IPHashSalt       string
	ReportCron       string
	NotifySMSTo      string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFrom        string
	EmailTo          string
}

// Flags holds command line flag values
type Flags struct {
	dataDir    *string
	dbDSN      *string
	apiAddr    *string
	reportCron *string
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataDir:          os.Getenv("INTAKEBOT_DATA_DIR"),
		APIAddr:          os.Getenv("API_ADDR"),
		AdminToken:       os.Getenv("ADMIN_API_TOKEN"),
		AnalyticsEnabled: util.ParseBoolEnv("ANALYTICS_ENABLED", true),
		IPHashSalt:       os.Getenv("IP_HASH_SALT"),
		ReportCron:       os.Getenv("REPORT_SCHEDULE"),
		NotifySMSTo:      os.Getenv("NOTIFY_SMS_TO"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		EmailFrom:        os.Getenv("NOTIFY_EMAIL_FROM"),
		EmailTo:          os.Getenv("NOTIFY_EMAIL_TO"),
	}
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			config.SMTPPort = port
		} else {
			slog.Warn("Invalid SMTP_PORT, using default", "value", raw)
		}
	}

	// Set default data directory if not specified
	if config.DataDir == "" {
		config.DataDir = DefaultDataDir
		slog.Debug("No INTAKEBOT_DATA_DIR set, using default", "default_data_dir", config.DataDir)
	} else {
		slog.Debug("INTAKEBOT_DATA_DIR found in environment", "data_dir", config.DataDir)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"INTAKEBOT_DATA_DIR", config.DataDir,
		"API_ADDR", config.APIAddr,
		"ADMIN_API_TOKEN_SET", config.AdminToken != "",
		"ANALYTICS_ENABLED", config.AnalyticsEnabled,
		"REPORT_SCHEDULE", config.ReportCron,
		"NOTIFY_SMS_TO_SET", config.NotifySMSTo != "",
		"SMTP_HOST_SET", config.SMTPHost != "",
		"NOTIFY_EMAIL_TO_SET", config.EmailTo != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		dataDir:    flag.String("data-dir", config.DataDir, "data directory for intake bot files (overrides $INTAKEBOT_DATA_DIR)"),
		dbDSN:      flag.String("db-dsn", config.DatabaseURL, "database DSN, Postgres URL or SQLite path (overrides $DATABASE_URL)"),
		apiAddr:    flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		reportCron: flag.String("report-cron", config.ReportCron, "cron schedule for the analytics report (overrides $REPORT_SCHEDULE)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"dataDir", *flags.dataDir,
		"dbDSN_set", *flags.dbDSN != "",
		"apiAddr", *flags.apiAddr,
		"reportCron", *flags.reportCron)

	return flags
}

// buildStore selects the storage backend: a database when a DSN is given,
// otherwise JSON files in the data directory.
func buildStore(flags Flags) (store.Store, error) {
	if *flags.dbDSN != "" {
		slog.Debug("Database DSN provided, configuring database store",
			"dsn_type", string(store.DetectDSNType(*flags.dbDSN)))
		return store.NewStore(store.WithDSN(*flags.dbDSN))
	}
	slog.Debug("No database DSN provided, using JSON file store", "data_dir", *flags.dataDir)
	return store.NewJSONFileStore(filepath.Join(*flags.dataDir, "data"))
}

// buildNotifier assembles the notification channels from configuration.
// With nothing configured, notifications land in the log.
func buildNotifier(config Config) notify.Notifier {
	var channels []notify.Notifier

	if config.NotifySMSTo != "" {
		smsClient, err := twiliosms.NewClient()
		if err != nil {
			slog.Warn("SMS notifications disabled", "error", err)
		} else if sms, err := notify.NewSMSNotifier(smsClient, config.NotifySMSTo); err != nil {
			slog.Warn("SMS notifications disabled", "error", err)
		} else {
			channels = append(channels, sms)
			slog.Info("SMS notifications enabled", "to", config.NotifySMSTo)
		}
	}

	if config.SMTPHost != "" && config.EmailTo != "" {
		opts := []notify.EmailOption{
			notify.WithSMTPServer(config.SMTPHost, config.SMTPPort),
			notify.WithSender(config.EmailFrom),
			notify.WithRecipients(strings.Split(config.EmailTo, ",")...),
		}
		if config.SMTPUsername != "" {
			opts = append(opts, notify.WithSMTPAuth(config.SMTPUsername, config.SMTPPassword))
		}
		email, err := notify.NewEmailNotifier(opts...)
		if err != nil {
			slog.Warn("Email notifications disabled", "error", err)
		} else {
			channels = append(channels, email)
			slog.Info("Email notifications enabled", "recipients", config.EmailTo)
		}
	}

	switch len(channels) {
	case 0:
		slog.Info("No notification channels configured, using log notifier")
		return notify.NewLogNotifier()
	case 1:
		return channels[0]
	default:
		return notify.NewMultiNotifier(channels...)
	}
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(config Config, flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	if config.AdminToken != "" {
		apiOpts = append(apiOpts, api.WithAdminToken(config.AdminToken))
	}
	apiOpts = append(apiOpts,
		api.WithAnalyticsEnabled(config.AnalyticsEnabled),
		api.WithIPHashSalt(config.IPHashSalt),
	)
	return apiOpts
}
