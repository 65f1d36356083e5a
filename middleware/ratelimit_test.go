package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPLimitersEvictIdleClients(t *testing.T) {
	l := newIPLimiters(rate.Limit(1), 1)

	start := time.Now()
	l.get("10.0.0.1", start)
	l.get("10.0.0.2", start.Add(limiterIdleTTL))

	l.sweep(start.Add(limiterIdleTTL / 2))
	if got := l.size(); got != 1 {
		t.Fatalf("expected 1 client after sweep, got %d", got)
	}
	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Error("idle client survived the sweep")
	}
	if _, ok := l.clients["10.0.0.2"]; !ok {
		t.Error("recently seen client was evicted")
	}
}

func TestIPLimitersTrackLastSeen(t *testing.T) {
	l := newIPLimiters(rate.Limit(1), 1)

	start := time.Now()
	l.get("10.0.0.1", start)
	// Active clients refresh their slot and survive sweeps
	l.get("10.0.0.1", start.Add(limiterIdleTTL))

	l.sweep(start.Add(limiterIdleTTL / 2))
	if got := l.size(); got != 1 {
		t.Fatalf("active client was evicted: %d clients left", got)
	}
}

func TestIPLimitersIsolatePerClient(t *testing.T) {
	l := newIPLimiters(rate.Limit(1), 1)
	now := time.Now()

	if !l.get("10.0.0.1", now).Allow() {
		t.Fatal("first request of a client must pass")
	}
	if l.get("10.0.0.1", now).Allow() {
		t.Error("burst of 1 allowed a second immediate request")
	}
	if !l.get("10.0.0.2", now).Allow() {
		t.Error("one client's burst throttled another client")
	}
}
