package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"meditrack/internal/models"
)

// RemindersConfig is the externally maintained medication schedule fed to
// the service at startup.
type RemindersConfig struct {
	Reminders []models.Reminder `toml:"reminders"`
}

// LoadRemindersConfig loads the reminder schedule from a TOML file.
func LoadRemindersConfig(filename string) (*RemindersConfig, error) {
	config := &RemindersConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders file: %w", err)
	}
	for _, rem := range config.Reminders {
		if rem.Pill == "" || rem.Time == "" {
			return nil, fmt.Errorf("reminders file: every entry needs pill and time")
		}
	}
	return config, nil
}

// DefaultReminders is the fallback schedule when no reminders file is
// configured and Redis holds nothing.
func DefaultReminders() []models.Reminder {
	return []models.Reminder{
		{Pill: "Paracetamol", Time: "08:00"},
		{Pill: "Vitamin D", Time: "20:00"},
	}
}
