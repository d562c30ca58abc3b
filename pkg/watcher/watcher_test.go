package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var callCount atomic.Int32

	// Trigger rapidly 10 times
	for i := 0; i < 10; i++ {
		d.Trigger(func() {
			callCount.Add(1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	// Wait for debounce to complete
	time.Sleep(100 * time.Millisecond)

	if count := callCount.Load(); count != 1 {
		t.Errorf("expected 1 callback invocation, got %d", count)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool

	d.Trigger(func() {
		called.Store(true)
	})

	// Cancel before debounce completes
	d.Cancel()

	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

// writeIndex creates an index file fixture.
func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWatcher_DetectsIndexChange(t *testing.T) {
	path := writeIndex(t, `{}`)

	var (
		changeMu sync.Mutex
		changed  bool
	)

	w, err := NewWatcher(path,
		WithDebounceDuration(50*time.Millisecond),
		WithOnChange(func() {
			changeMu.Lock()
			changed = true
			changeMu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Give the watcher time to initialize
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"a": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)

	changeMu.Lock()
	wasChanged := changed
	changeMu.Unlock()

	if !wasChanged {
		t.Error("expected change to be detected")
	}
}

func TestWatcher_PollingFallback(t *testing.T) {
	path := writeIndex(t, `{}`)

	var (
		changeMu sync.Mutex
		changed  bool
	)

	w, err := NewWatcher(path,
		WithDebounceDuration(50*time.Millisecond),
		WithPollInterval(100*time.Millisecond),
		WithForcePoll(true),
		WithOnChange(func() {
			changeMu.Lock()
			changed = true
			changeMu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("expected watcher to be in polling mode")
	}

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"a": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)

	changeMu.Lock()
	wasChanged := changed
	changeMu.Unlock()

	if !wasChanged {
		t.Error("expected change to be detected via polling")
	}
}

func TestWatcher_ChangedChannel(t *testing.T) {
	path := writeIndex(t, `{}`)

	w, err := NewWatcher(path,
		WithDebounceDuration(50*time.Millisecond),
		WithPollInterval(100*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(path, []byte(`{"a": {}}`), 0o644)
	}()

	select {
	case <-w.Changed():
	case <-time.After(500 * time.Millisecond):
		t.Error("timeout waiting for change notification")
	}
}

func TestWatcher_EnvForcesPolling(t *testing.T) {
	t.Setenv("CORTEX_FORCE_POLL", "1")

	path := writeIndex(t, `{}`)
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("expected polling mode when CORTEX_FORCE_POLL is set")
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	path := writeIndex(t, `{}`)
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcher_StopAndRestart(t *testing.T) {
	path := writeIndex(t, `{}`)
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	if w.IsStarted() {
		t.Error("watcher reports started after Stop")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
}

func TestWatcher_MissingFileOK(t *testing.T) {
	// The index may not exist yet; watching its future path must work.
	path := filepath.Join(t.TempDir(), "index.json")
	w, err := NewWatcher(path,
		WithDebounceDuration(50*time.Millisecond),
		WithPollInterval(50*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(path, []byte(`{}`), 0o644)
	}()

	select {
	case <-w.Changed():
	case <-time.After(time.Second):
		t.Error("creation of the watched file not detected")
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	path := writeIndex(t, `{}`)

	errCh := make(chan error, 4)
	w, err := NewWatcher(path,
		WithPollInterval(50*time.Millisecond),
		WithForcePoll(true),
		WithOnError(func(e error) {
			select {
			case errCh <- e:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-errCh:
		if !errors.Is(e, ErrFileRemoved) {
			t.Errorf("error = %v, want ErrFileRemoved", e)
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for removal error")
	}
}
