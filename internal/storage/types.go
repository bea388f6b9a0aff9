package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures storage.
//
// Driver values:
//   - "file": dependency-free file backend (jsonl)
//   - "sqlite": SQLite database file (optional build tag)
//
// If Driver is empty or "none", storage is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// NotificationEntry records one delivery attempt.
// Keep it compact and schema-stable.
type NotificationEntry struct {
	At        time.Time `json:"at"`
	ChatID    int64     `json:"chat_id"`
	Kind      string    `json:"kind"` // "status" | "error"
	Text      string    `json:"text"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
}
