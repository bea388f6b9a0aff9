// Package notify delivers report messages to the recipient chat.
//
// Delivery failures are absorbed here: they are logged and recorded in the
// history, but never propagate to the poll loop. A failed report is simply
// retried implicitly whenever the underlying status changes again.
package notify

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/YanaYugai/homework-bot/internal/storage"
	"github.com/YanaYugai/homework-bot/pkg/logx"
)

const historyMax = 300

// Adapter is the delivery capability (the Telegram transport in production).
type Adapter interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type Config struct {
	ChatID int64

	// RatePerSec limits outgoing sends. Zero or negative selects 1/sec,
	// well under the Bot API per-chat quota.
	RatePerSec int
}

type Service struct {
	adapter Adapter
	log     logx.Logger
	store   storage.Store

	chatID  int64
	limiter *rate.Limiter

	mu      sync.Mutex
	history []storage.NotificationEntry
}

func New(cfg Config, adapter Adapter, log logx.Logger, store storage.Store) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Service{
		adapter: adapter,
		log:     log,
		store:   store,
		chatID:  cfg.ChatID,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Notify attempts to deliver text to the recipient chat. It never fails
// observably to its caller: a rejected send is logged and recorded, nothing
// more. Kind tags the entry in history ("status" or "error").
func (s *Service) Notify(ctx context.Context, kind, text string) {
	if err := s.limiter.Wait(ctx); err != nil {
		// Shutting down mid-send; nothing to report.
		return
	}

	entry := storage.NotificationEntry{
		At:     time.Now(),
		ChatID: s.chatID,
		Kind:   kind,
		Text:   text,
	}

	if err := s.adapter.SendText(ctx, s.chatID, text); err != nil {
		entry.Error = err.Error()
		s.log.Warn("notification send failed",
			logx.Err(err), logx.Int64("chat_id", s.chatID), logx.String("kind", kind))
	} else {
		entry.Delivered = true
		s.log.Debug("notification sent",
			logx.Int64("chat_id", s.chatID), logx.String("kind", kind))
	}

	s.appendHistory(ctx, entry)
}

func (s *Service) appendHistory(ctx context.Context, e storage.NotificationEntry) {
	s.mu.Lock()
	s.history = append(s.history, e)
	if len(s.history) > historyMax {
		s.history = s.history[len(s.history)-historyMax:]
	}
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.AppendNotification(ctx, e); err != nil {
			s.log.Debug("notification history append failed", logx.Err(err))
		}
	}
}

// LoadHistory seeds the in-memory history from the persistent store so that
// /status shows deliveries from before the last restart. Entries already in
// memory are kept after the loaded ones. No-op without a store.
func (s *Service) LoadHistory(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	loaded, err := s.store.RecentNotifications(ctx, historyMax)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return nil
	}

	s.mu.Lock()
	s.history = append(loaded, s.history...)
	if len(s.history) > historyMax {
		s.history = s.history[len(s.history)-historyMax:]
	}
	s.mu.Unlock()

	s.log.Debug("notification history restored", logx.Int("entries", len(loaded)))
	return nil
}

// History returns a copy of the in-memory delivery history, oldest first.
func (s *Service) History() []storage.NotificationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.NotificationEntry(nil), s.history...)
}
