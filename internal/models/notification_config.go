package models

import "fmt"

// NotificationConfig is the single per-account reminder configuration:
// how many days before an item's deadline its reminder fires, and at what
// time of day.
type NotificationConfig struct {
	LeadDays int `db:"lead_days" json:"lead_days"`
	Hour     int `db:"hour" json:"hour"`
	Minute   int `db:"minute" json:"minute"`
}

// TableName returns the local cache table name for NotificationConfig.
func (NotificationConfig) TableName() string {
	return "notification_config"
}

// Validate checks the configured ranges: LeadDays >= 0, Hour 0-23, Minute 0-59.
func (c NotificationConfig) Validate() error {
	if c.LeadDays < 0 {
		return fmt.Errorf("lead days must be >= 0, got %d", c.LeadDays)
	}
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("hour must be 0-23, got %d", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("minute must be 0-59, got %d", c.Minute)
	}
	return nil
}
