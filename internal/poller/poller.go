// Package poller runs the fetch -> validate -> interpret -> notify loop.
//
// The loop is a single goroutine. Every iteration runs to completion, no
// iteration error ever stops the loop, and the wait between iterations is
// cancellable so shutdown does not block for the full poll period.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/YanaYugai/homework-bot/internal/homework"
	"github.com/YanaYugai/homework-bot/pkg/logx"
)

const errorReportPrefix = "Сбой в работе программы: "

// Fetcher is the fetch capability (internal/practicum in production).
type Fetcher interface {
	HomeworkStatuses(ctx context.Context, since int64) ([]byte, error)
}

// Notifier is the delivery side (internal/notify in production).
type Notifier interface {
	Notify(ctx context.Context, kind, text string)
}

type Config struct {
	// Spec decides when iterations run. Default is every 10 minutes,
	// matching the original cadence.
	Spec ParsedSpec

	// StartCursor is the from_date value sent on every request. The cursor
	// is intentionally never advanced after a successful poll: each request
	// re-asks for changes since process start, exactly like the original
	// bot. Statuses reported more than once are absorbed by dedup.
	StartCursor int64
}

// Poller owns the loop state: the last delivered status message and the last
// delivered error report, used to suppress repeats.
type Poller struct {
	fetch    Fetcher
	notifier Notifier
	log      logx.Logger
	spec     ParsedSpec
	cursor   int64

	mu          sync.Mutex
	lastMessage string
	lastError   string
	iterations  uint64
	lastRunAt   time.Time
	lastSentAt  time.Time
}

func New(cfg Config, fetch Fetcher, notifier Notifier, log logx.Logger) *Poller {
	if log.IsZero() {
		log = logx.Nop()
	}
	spec := cfg.Spec
	if spec.Cron == nil && spec.Every <= 0 {
		spec = ParsedSpec{Kind: SpecInterval, Every: 10 * time.Minute, Source: "duration"}
	}
	cursor := cfg.StartCursor
	if cursor == 0 {
		cursor = time.Now().Unix()
	}
	return &Poller{
		fetch:    fetch,
		notifier: notifier,
		log:      log,
		spec:     spec,
		cursor:   cursor,
	}
}

// Run executes iterations until ctx is cancelled. The first iteration runs
// immediately; afterwards the poller sleeps until the schedule's next tick,
// waking early on cancellation.
func (p *Poller) Run(ctx context.Context) {
	p.log.Info("poll loop started", logx.String("schedule", p.spec.Source))

	p.runOnce(ctx)

	for {
		wait := time.Until(p.spec.Next(time.Now()))
		if wait < 0 {
			wait = 0
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			if !t.Stop() {
				<-t.C
			}
			p.log.Info("poll loop stopped")
			return
		case <-t.C:
		}
		p.runOnce(ctx)
	}
}

// runOnce performs one full iteration. Iteration failures become error
// reports; they never escape.
func (p *Poller) runOnce(ctx context.Context) {
	p.mu.Lock()
	p.iterations++
	p.lastRunAt = time.Now()
	p.mu.Unlock()

	msg, err := p.iterate(ctx)
	switch {
	case err != nil:
		p.reportError(ctx, err)
	case msg != "":
		p.reportStatus(ctx, msg)
	default:
		// Empty homeworks list: nothing changed, dedup state stays as-is.
		p.log.Debug("no homework records in response")
	}
}

func (p *Poller) iterate(ctx context.Context) (string, error) {
	payload, err := p.fetch.HomeworkStatuses(ctx, p.cursor)
	if err != nil {
		return "", err
	}

	resp, err := homework.CheckResponse(payload)
	if err != nil {
		return "", err
	}
	if len(resp.Homeworks) == 0 {
		return "", nil
	}

	// Only the first record is interpreted; trailing records are ignored.
	// This mirrors the original bot and is deliberate, not an oversight.
	return homework.ParseStatus(resp.Homeworks[0])
}

func (p *Poller) reportStatus(ctx context.Context, msg string) {
	p.mu.Lock()
	changed := msg != p.lastMessage
	if changed {
		p.lastMessage = msg
		p.lastSentAt = time.Now()
	}
	// A successfully interpreted iteration clears the error dedup, so a
	// recurring failure is reported again after a healthy stretch.
	p.lastError = ""
	p.mu.Unlock()

	if !changed {
		p.log.Debug("status unchanged, notification suppressed")
		return
	}
	p.log.Info("homework status changed")
	p.notifier.Notify(ctx, "status", msg)
}

func (p *Poller) reportError(ctx context.Context, err error) {
	text := errorReportPrefix + err.Error()

	p.mu.Lock()
	changed := text != p.lastError
	// Updated even when suppressed, so the same failure is reported once.
	p.lastError = text
	p.mu.Unlock()

	p.log.Error("poll iteration failed", logx.Err(err))
	if !changed {
		return
	}
	p.notifier.Notify(ctx, "error", text)
}
