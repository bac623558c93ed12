package models

// Reminder is a single entry of the medication schedule served to the
// mobile client. Time is a wall-clock "HH:MM" string.
type Reminder struct {
	Pill string `json:"pill" toml:"pill"`
	Time string `json:"time" toml:"time"`
}
