package poller

import (
	"context"
	"testing"
	"time"

	"github.com/YanaYugai/homework-bot/internal/practicum"
	"github.com/YanaYugai/homework-bot/pkg/logx"
)

type scriptedFetcher struct {
	payloads []string
	errs     []error
	calls    int
	cursors  []int64
}

func (f *scriptedFetcher) HomeworkStatuses(ctx context.Context, since int64) ([]byte, error) {
	i := f.calls
	f.calls++
	f.cursors = append(f.cursors, since)
	if i >= len(f.payloads) {
		i = len(f.payloads) - 1
	}
	if f.errs != nil && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return []byte(f.payloads[i]), nil
}

type recordingNotifier struct {
	kinds []string
	texts []string
}

func (n *recordingNotifier) Notify(ctx context.Context, kind, text string) {
	n.kinds = append(n.kinds, kind)
	n.texts = append(n.texts, text)
}

func newTestPoller(f Fetcher, n Notifier) *Poller {
	return New(Config{StartCursor: 1700000000}, f, n, logx.Nop())
}

const approvedPayload = `{"homeworks":[{"id":1,"homework_name":"X","status":"approved"}],"current_date":1700000100}`

func TestStatusNotificationDedup(t *testing.T) {
	t.Parallel()
	fetch := &scriptedFetcher{payloads: []string{approvedPayload, approvedPayload}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	ctx := context.Background()
	p.runOnce(ctx)
	p.runOnce(ctx)

	if len(sink.texts) != 1 {
		t.Fatalf("expected 1 delivery, got %d: %#v", len(sink.texts), sink.texts)
	}
	want := "Изменился статус проверки работы \"X\". Работа проверена: ревьюеру всё понравилось. Ура!"
	if sink.texts[0] != want {
		t.Fatalf("message = %q, want %q", sink.texts[0], want)
	}
	if sink.kinds[0] != "status" {
		t.Fatalf("kind = %q, want status", sink.kinds[0])
	}
}

func TestStatusChangeDelivered(t *testing.T) {
	t.Parallel()
	reviewing := `{"homeworks":[{"id":1,"homework_name":"X","status":"reviewing"}],"current_date":1}`
	fetch := &scriptedFetcher{payloads: []string{reviewing, approvedPayload}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	ctx := context.Background()
	p.runOnce(ctx)
	p.runOnce(ctx)

	if len(sink.texts) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sink.texts))
	}
}

func TestErrorReportDedup(t *testing.T) {
	t.Parallel()
	missingKey := `{"current_date":1}`
	fetch := &scriptedFetcher{payloads: []string{missingKey, missingKey, `[broken`}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	ctx := context.Background()
	p.runOnce(ctx) // first malformed response -> delivered
	p.runOnce(ctx) // identical error -> suppressed
	p.runOnce(ctx) // different error -> delivered again

	if len(sink.texts) != 2 {
		t.Fatalf("expected 2 deliveries, got %d: %#v", len(sink.texts), sink.texts)
	}
	for i, text := range sink.texts {
		if sink.kinds[i] != "error" {
			t.Fatalf("kind[%d] = %q, want error", i, sink.kinds[i])
		}
		if len(text) < len(errorReportPrefix) || text[:len(errorReportPrefix)] != errorReportPrefix {
			t.Fatalf("report %q lacks the error prefix", text)
		}
	}
	if sink.texts[0] == sink.texts[1] {
		t.Fatal("second delivery should be a different error")
	}
}

func TestEndpointUnavailableReported(t *testing.T) {
	t.Parallel()
	unavailable := &practicum.EndpointUnavailableError{StatusCode: 503}
	fetch := &scriptedFetcher{payloads: []string{"", ""}, errs: []error{unavailable, unavailable}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	ctx := context.Background()
	p.runOnce(ctx)
	p.runOnce(ctx)

	if len(sink.texts) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sink.texts))
	}
	want := errorReportPrefix + unavailable.Error()
	if sink.texts[0] != want {
		t.Fatalf("report = %q, want %q", sink.texts[0], want)
	}
}

func TestEmptyHomeworksChangesNothing(t *testing.T) {
	t.Parallel()
	empty := `{"homeworks":[],"current_date":1}`
	fetch := &scriptedFetcher{payloads: []string{empty}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	p.runOnce(context.Background())

	if len(sink.texts) != 0 {
		t.Fatalf("expected no deliveries, got %#v", sink.texts)
	}
	snap := p.Snapshot()
	if snap.LastMessage != "" || snap.LastError != "" {
		t.Fatalf("dedup state should be untouched: %+v", snap)
	}
	if snap.Iterations != 1 {
		t.Fatalf("Iterations = %d, want 1", snap.Iterations)
	}
}

func TestSuccessResetsErrorDedup(t *testing.T) {
	t.Parallel()
	missingKey := `{"current_date":1}`
	fetch := &scriptedFetcher{payloads: []string{missingKey, approvedPayload, missingKey}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	ctx := context.Background()
	p.runOnce(ctx) // error -> delivered
	p.runOnce(ctx) // status -> delivered, error dedup resets
	p.runOnce(ctx) // same error again -> delivered again

	if len(sink.texts) != 3 {
		t.Fatalf("expected 3 deliveries, got %d: %#v", len(sink.texts), sink.texts)
	}
	if sink.kinds[0] != "error" || sink.kinds[1] != "status" || sink.kinds[2] != "error" {
		t.Fatalf("unexpected kinds: %#v", sink.kinds)
	}
}

func TestCursorNeverAdvances(t *testing.T) {
	t.Parallel()
	fetch := &scriptedFetcher{payloads: []string{approvedPayload, approvedPayload, approvedPayload}}
	sink := &recordingNotifier{}
	p := newTestPoller(fetch, sink)

	ctx := context.Background()
	p.runOnce(ctx)
	p.runOnce(ctx)
	p.runOnce(ctx)

	for i, c := range fetch.cursors {
		if c != 1700000000 {
			t.Fatalf("cursor[%d] = %d, want 1700000000", i, c)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	fetch := &scriptedFetcher{payloads: []string{approvedPayload}}
	sink := &recordingNotifier{}
	p := New(Config{
		Spec:        ParsedSpec{Kind: SpecInterval, Every: time.Hour, Source: "duration"},
		StartCursor: 1,
	}, fetch, sink, logx.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// First iteration runs immediately; the hour-long wait must be
	// interruptible.
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	if fetch.calls != 1 {
		t.Fatalf("expected exactly 1 iteration, got %d", fetch.calls)
	}
}
