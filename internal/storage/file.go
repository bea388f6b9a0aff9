package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/YanaYugai/homework-bot/pkg/logx"
)

// fileStore is a dependency-free persistence backend: a single append-only
// JSON Lines file of notification entries.
type fileStore struct {
	log logx.Logger

	mu sync.Mutex

	path string
	file *os.File
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("storage.path is required for file driver")
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if filepath.Ext(path) == "" {
		path += ".notifications.jsonl"
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	return &fileStore{log: log, path: path, file: f}, nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *fileStore) AppendNotification(ctx context.Context, e NotificationEntry) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return errors.New("notification log closed")
	}
	return json.NewEncoder(s.file).Encode(e)
}

// RecentNotifications returns up to limit entries, oldest first. The log is
// re-read on each call; entry volume is one per status change, so scanning
// the whole file is fine.
func (s *fileStore) RecentNotifications(ctx context.Context, limit int) ([]NotificationEntry, error) {
	_ = ctx
	if limit <= 0 {
		limit = 50
	}

	s.mu.Lock()
	path := s.path
	s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []NotificationEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e NotificationEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			// Skip corrupt lines instead of failing the whole read.
			s.log.Debug("skipping corrupt notification log line", logx.Err(err))
			continue
		}
		out = append(out, e)
		if len(out) > limit {
			out = out[len(out)-limit:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
