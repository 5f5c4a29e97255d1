package ratelimit

import (
	"testing"
	"time"
)

func TestAllow_UnderLimit(t *testing.T) {
	l := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
}

func TestAllow_OverLimit(t *testing.T) {
	l := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.1")
	}

	if l.Allow("10.0.0.1") {
		t.Error("6th attempt within the window should be denied")
	}
}

func TestAllow_WindowSlides(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(5, time.Minute)
	l.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("6th attempt within the window should be denied")
	}

	// Once the window has elapsed, old attempts no longer count.
	current = current.Add(61 * time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("attempt after the window elapsed should be allowed")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("10.0.0.1") {
		t.Fatal("first attempt for first key should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("second attempt for first key should be denied")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("a different key must not be affected by the first key's attempts")
	}
}

func TestWindow(t *testing.T) {
	l := New(5, 90*time.Second)

	if got := l.Window(); got != 90*time.Second {
		t.Errorf("Window() = %v, want 90s", got)
	}
}
