// Package ratelimit paces outbound requests to the polite_delay_ms config
// value (spec §4.2/§4.9), so scraping and collection don't hammer a site.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum delay between successive Wait calls, built on
// golang.org/x/time/rate the way internal/middleware/security.go's
// RateLimiter wraps it for per-visitor throttling.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer builds a pacer that allows one request every delay, with a
// burst of 1 so the first call never blocks.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is permitted, or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// PerKeyPacer paces independently per key (e.g. per source host), mirroring
// the teacher's per-IP visitor map, with idle entries reaped periodically.
type PerKeyPacer struct {
	mu       sync.Mutex
	delay    time.Duration
	pacers   map[string]*entry
	stopOnce sync.Once
	stop     chan struct{}
}

type entry struct {
	pacer    *Pacer
	lastUsed time.Time
}

// NewPerKeyPacer builds a PerKeyPacer and starts its background reaper,
// which removes keys idle for longer than 10x delay (minimum 1 minute).
func NewPerKeyPacer(delay time.Duration) *PerKeyPacer {
	p := &PerKeyPacer{
		delay:  delay,
		pacers: make(map[string]*entry),
		stop:   make(chan struct{}),
	}
	go p.reap()
	return p
}

// Wait blocks until the next request for key is permitted, or ctx is done.
func (p *PerKeyPacer) Wait(ctx context.Context, key string) error {
	p.mu.Lock()
	e, ok := p.pacers[key]
	if !ok {
		e = &entry{pacer: NewPacer(p.delay)}
		p.pacers[key] = e
	}
	e.lastUsed = time.Now()
	pacer := e.pacer
	p.mu.Unlock()

	return pacer.Wait(ctx)
}

func (p *PerKeyPacer) reap() {
	idleAfter := 10 * p.delay
	if idleAfter < time.Minute {
		idleAfter = time.Minute
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			for k, e := range p.pacers {
				if time.Since(e.lastUsed) > idleAfter {
					delete(p.pacers, k)
				}
			}
			p.mu.Unlock()
		}
	}
}

// Close stops the background reaper goroutine.
func (p *PerKeyPacer) Close() {
	p.stopOnce.Do(func() { close(p.stop) })
}
