package http

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRequestsPerMinute is the per-client budget when none is configured.
const DefaultRequestsPerMinute = 300

const (
	rateWindow    = time.Minute
	sweepInterval = 5 * time.Minute
	idleClientTTL = 10 * time.Minute
)

// window is one client's fixed counting window.
type window struct {
	start time.Time
	seen  time.Time
	count int
}

// rateLimiter allows perMinute requests per client in fixed one-minute
// windows. Idle clients are swept in the background until stop is called.
type rateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	perMinute int
	now       func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func newRateLimiter(perMinute int) *rateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultRequestsPerMinute
	}
	rl := &rateLimiter{
		windows:   make(map[string]*window),
		perMinute: perMinute,
		now:       time.Now,
		done:      make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *rateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep forgets clients idle for longer than idleClientTTL.
func (rl *rateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-idleClientTTL)
	for client, w := range rl.windows {
		if w.seen.Before(cutoff) {
			delete(rl.windows, client)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// allow counts one request from client and reports whether it fits the
// current window. Refusals are added to metrics when it is non-nil.
func (rl *rateLimiter) allow(client string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[client]
	if !ok || now.Sub(w.start) >= rateWindow {
		w = &window{start: now}
		rl.windows[client] = w
	}
	w.seen = now
	w.count++

	if w.count > rl.perMinute {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}
	return true
}
