package maze

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsAfterLastWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.txt")
	if err := os.WriteFile(path, []byte(tinyTemplate), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// A burst of writes closer together than the debounce delay
	var lastWrite time.Time
	for i := 0; i < 4; i++ {
		if err := os.WriteFile(path, []byte(tinyTemplate), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		lastWrite = time.Now()
		time.Sleep(debounceDelay / 4)
	}

	select {
	case got := <-w.Events:
		if time.Since(lastWrite) < debounceDelay {
			t.Errorf("change reported %v after the last write, want at least %v", time.Since(lastWrite), debounceDelay)
		}
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Errorf("event path = %q, want %q", got, abs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case got := <-w.Events:
		t.Errorf("second event %q for a single burst", got)
	case <-time.After(3 * debounceDelay):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.txt")
	if err := os.WriteFile(path, []byte(tinyTemplate), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
