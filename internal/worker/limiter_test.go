package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	allowed := 0
	for i := 0; i < 5; i++ {
		if l.Allow("https://api.example.com/search") {
			allowed++
		}
	}

	if allowed != 3 {
		t.Errorf("Expected burst of 3 allowed, got %d", allowed)
	}
}

func TestLimiter_DomainsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://one.example/a") {
		t.Error("Expected first domain allowed")
	}
	if !l.Allow("https://two.example/b") {
		t.Error("Expected second domain unaffected by first")
	}
	if l.Allow("https://one.example/c") {
		t.Error("Expected first domain exhausted")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow("https://slow.example/") // exhaust the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://slow.example/"); err == nil {
		t.Error("Expected context deadline to interrupt the wait")
	}
}

func TestLimiter_ZeroRateDoesNotBlock(t *testing.T) {
	l := NewLimiter(0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := l.Wait(ctx, "https://api.example.com/search"); err != nil {
		t.Errorf("Expected defaulted rate to grant clearance, got %v", err)
	}
	if !l.Allow("https://api.example.com/search") {
		t.Error("Expected defaulted burst to allow a request")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)

	if l.Allow("://not-a-url") {
		t.Error("Expected invalid URL to be denied")
	}
}
