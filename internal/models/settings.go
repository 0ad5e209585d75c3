package models

// Setting keys shared with external consumers. Stable contract: renaming a
// key orphans previously persisted values.
const (
	SettingTotalCount    = "total_count"
	SettingAchievements  = "achievements"
	SettingPendingSync   = "pending_sync"
	SettingTimeStats     = "time_stats"
	SettingNotifications = "notifications"
)

// NotificationConfig mirrors the persisted notification settings object.
// ReminderTime is "HH:MM" or empty for no reminder.
type NotificationConfig struct {
	MilestoneAlerts bool   `json:"milestone_alerts"`
	ReminderTime    string `json:"reminder_time"`
}
