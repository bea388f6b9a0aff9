package poller

import "time"

// Snapshot is a point-in-time view of the loop state for /status.
type Snapshot struct {
	Iterations  uint64    `json:"iterations"`
	LastRunAt   time.Time `json:"last_run_at"`
	LastSentAt  time.Time `json:"last_sent_at,omitempty"`
	LastMessage string    `json:"last_message,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Iterations:  p.iterations,
		LastRunAt:   p.lastRunAt,
		LastSentAt:  p.lastSentAt,
		LastMessage: p.lastMessage,
		LastError:   p.lastError,
	}
}
