package sender

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestDispatcherRunsJob(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 4})
	defer d.Close()

	done := make(chan struct{})
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not executed")
	}
	if got := d.ErrorCount(); got != 0 {
		t.Fatalf("error count = %d, want 0", got)
	}
}

func TestDispatcherRetriesTransientError(t *testing.T) {
	d := NewDispatcher(Options{
		Workers:      1,
		QueueSize:    4,
		MaxRetries:   2,
		RetryBackoff: 10 * time.Millisecond,
	})
	defer d.Close()

	var (
		mu    sync.Mutex
		calls int
	)
	done := make(chan struct{})
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			return timeoutErr{}
		}
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not succeed after retries")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDispatcherDoesNotRetryPermanentError(t *testing.T) {
	d := NewDispatcher(Options{
		Workers:      1,
		QueueSize:    4,
		MaxRetries:   3,
		RetryBackoff: 10 * time.Millisecond,
	})

	var (
		mu    sync.Mutex
		calls int
	)
	if err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("telegram: Bad Request (400)")
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if got := d.ErrorCount(); got != 1 {
		t.Fatalf("error count = %d, want 1", got)
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	defer d.Close()

	block := make(chan struct{})
	release := make(chan struct{})
	if err := d.Enqueue(context.Background(), "a", "", func() error {
		close(block)
		<-release
		return nil
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	<-block

	// Worker is busy: fill the single queue slot, then overflow it.
	if err := d.Enqueue(context.Background(), "b", "", func() error { return nil }); err != nil {
		t.Fatalf("enqueue into free slot: %v", err)
	}
	if err := d.Enqueue(context.Background(), "c", "", func() error { return nil }); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	close(release)
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	d.Close()

	if err := d.Enqueue(context.Background(), "a", "", func() error { return nil }); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("err = %v, want ErrQueueClosed", err)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot12345:AAAbbbCCC-dd/sendMessage": EOF`)
	got := sanitizeErrorMessage(err)
	want := `Post "https://api.telegram.org/bot<redacted>/sendMessage": EOF`
	if got != want {
		t.Fatalf("sanitize = %q, want %q", got, want)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"timeout", timeoutErr{}, "timeout"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"dns", &net.DNSError{Name: "api.telegram.org"}, "dns"},
		{"http 5xx", errors.New("telegram: Internal Server Error (500)"), "http_5xx"},
		{"http 4xx", errors.New("telegram: Bad Request (400)"), "http_4xx"},
		{"unknown", errors.New("boom"), "unknown"},
	}
	for _, tc := range cases {
		if got := classifyError(tc.err); got != tc.want {
			t.Errorf("%s: classify = %q, want %q", tc.name, got, tc.want)
		}
	}
}
