package logging

import "testing"

func TestNewAlwaysReturnsUsableLogger(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		logger := New(env)
		if logger == nil {
			t.Fatalf("New(%q) = nil, want a usable logger", env)
		}
		// Must not panic.
		logger.Debug("logger construction check")
		_ = logger.Sync()
	}
}
