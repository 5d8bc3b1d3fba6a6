package constants

import "time"

const (
	AppName            = "chorewheel"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/chorewheel/config.yaml"
	DefaultDBPath      = "~/.config/chorewheel/chorewheel.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// EnvDBConnection overrides the database location with a PostgreSQL connection string
	EnvDBConnection = "CHOREWHEEL_DB_CONNECTION"

	// Log rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 5
	LogMaxBackups = 5
	LogMaxAgeDays = 60

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "chorewheel-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "chorewheel-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.chorewheel"
	TrayExecutablePrefix   = "chorewheel-tray"
	TrayLocation           = "tray"
)
