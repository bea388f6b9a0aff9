package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/YanaYugai/homework-bot/pkg/logx"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl")

	st, err := Open(Config{Driver: "file", Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	entries := []NotificationEntry{
		{At: now.Add(-2 * time.Minute), ChatID: 7, Kind: "status", Text: "first", Delivered: true},
		{At: now.Add(-1 * time.Minute), ChatID: 7, Kind: "error", Text: "second", Delivered: false, Error: "boom"},
		{At: now, ChatID: 7, Kind: "status", Text: "third", Delivered: true},
	}
	for _, e := range entries {
		if err := st.AppendNotification(ctx, e); err != nil {
			t.Fatalf("AppendNotification: %v", err)
		}
	}

	got, err := st.RecentNotifications(ctx, 2)
	if err != nil {
		t.Fatalf("RecentNotifications: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Text != "second" || got[1].Text != "third" {
		t.Fatalf("unexpected window: %q, %q", got[0].Text, got[1].Text)
	}
	if got[0].Error != "boom" || got[0].Delivered {
		t.Fatalf("error entry not preserved: %+v", got[0])
	}
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl")

	if err := os.WriteFile(path, []byte("{\"text\":\"ok\",\"kind\":\"status\"}\nnot json\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	st, err := Open(Config{Driver: "file", Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	got, err := st.RecentNotifications(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentNotifications: %v", err)
	}
	if len(got) != 1 || got[0].Text != "ok" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestOpenDisabledAndUnknown(t *testing.T) {
	st, err := Open(Config{}, logx.Nop())
	if err != nil || st != nil {
		t.Fatalf("disabled storage should be (nil, nil), got (%v, %v)", st, err)
	}
	if _, err := Open(Config{Driver: "postgres"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
