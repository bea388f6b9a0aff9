// Package storage provides the optional notification history backend.
//
// Only delivered/attempted notifications are recorded, for operator
// inspection via /status. The poll loop's dedup state is deliberately
// in-memory only: a restarted bot re-reports the current status.
package storage
