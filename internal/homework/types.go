// Package homework holds the domain model for Practicum homework review
// statuses: the wire shapes, the verdict table, response validation and
// status-to-message interpretation.
//
// Everything here is pure; talking to the API and to Telegram lives in
// internal/practicum and internal/transport/telegram.
package homework

// Homework is a single review-status record as returned by the API.
// Records are read-only and live for one poll iteration.
type Homework struct {
	ID     int64  `json:"id"`
	Name   string `json:"homework_name"`
	Status string `json:"status"`
}

// Response is a validated statuses payload.
//
// CurrentDate is the server-side "as of" timestamp. The original bot never
// feeds it back as the next from_date cursor, and that behavior is kept:
// the field is decoded and exposed but the poller does not consume it.
type Response struct {
	Homeworks   []Homework
	CurrentDate int64
}
