package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("alice") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("alice") {
		t.Fatal("fourth request should be rejected")
	}
}

func TestSeparateUsers(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	defer l.Stop()

	if !l.Allow("alice") {
		t.Fatal("alice's first request should be allowed")
	}
	if !l.Allow("bob") {
		t.Fatal("bob's first request should be allowed")
	}
	if l.Allow("alice") {
		t.Fatal("alice's second request should be rejected")
	}
}

func TestEmptyKeyNeverLimited(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		if !l.Allow("") {
			t.Fatal("empty key must never be limited")
		}
	}
}

func TestWindowSlides(t *testing.T) {
	l := NewLimiter(1, 50*time.Millisecond)
	defer l.Stop()

	if !l.Allow("alice") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("alice") {
		t.Fatal("second request inside the window should be rejected")
	}
	time.Sleep(60 * time.Millisecond)
	if !l.Allow("alice") {
		t.Fatal("request after the window should be allowed")
	}
}
