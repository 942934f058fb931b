package monitor

import "time"

type Status struct {
	PostgreSQL     bool      `json:"postgresql"`
	Redis          bool      `json:"redis"`
	Prefs          bool      `json:"prefs"`
	ActiveSessions int       `json:"active_sessions"`
	LastCheck      time.Time `json:"last_check"`
}
