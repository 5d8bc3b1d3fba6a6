package constants

const (
	// Scheduler defaults
	DefaultTimezone               = "Local" // Use system local timezone by default
	DefaultDailyNotificationTime  = "10:00"
	DefaultReminderTime           = "20:00"
	DefaultReportTime             = "22:00"
	DefaultRotationStart          = "2024-01-01"
	DefaultExtendedIntervalWeeks  = 5
	DefaultGeneralIntervalWeeks   = 26
	DefaultTasksFile              = "tasks.yaml"
	DefaultUsersFile              = "users.yaml"
	DefaultNotificationsEnabled   = true
	DefaultGroupNotificationLabel = "group"

	// Rotation policy names
	PolicyRoundRobin    = "round-robin"
	PolicyClusteredPair = "clustered-pair"
	DefaultPolicy       = PolicyRoundRobin

	// Notification kinds
	NotifyKindDaily   = "daily"
	NotifyKindEvening = "evening"
	NotifyKindReport  = "report"
)
