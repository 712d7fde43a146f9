package ratelimit

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst, 0)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("10.0.0.1") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_KeysIndependent(t *testing.T) {
	rl := New(0.001, 1, 0)
	defer rl.Stop()

	if !rl.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if rl.Allow("a") {
		t.Error("second request for a should be limited")
	}
	if !rl.Allow("b") {
		t.Error("first request for b should pass")
	}
	if got := rl.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	rl := New(1, 1, 0)
	defer rl.Stop()
	rl.idleTTL = time.Minute

	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	rl.Allow("stale")
	now = now.Add(2 * time.Minute)
	rl.Allow("fresh")

	rl.evictIdle()

	if got := rl.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	if _, ok := rl.entries["fresh"]; !ok {
		t.Error("fresh key was evicted")
	}
}

func TestKeyedRateLimiter_StopNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := New(1, 1, 10*time.Millisecond)
	rl.Allow("x")
	rl.Stop()
	rl.Stop()
}
