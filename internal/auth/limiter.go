package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiterConfig bounds login attempts per identifier.
type LoginLimiterConfig struct {
	RPS             float64
	Burst           int
	CleanupInterval time.Duration
}

// DefaultLoginLimiterConfig allows a short burst of attempts and then
// throttles further logins for the same identifier.
var DefaultLoginLimiterConfig = LoginLimiterConfig{
	RPS:             1,
	Burst:           3,
	CleanupInterval: 10 * time.Minute,
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter rate-limits login attempts per identifier (email or IP).
type LoginLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	cfg     LoginLimiterConfig
	done    chan struct{}
}

// NewLoginLimiter creates a limiter and starts its idle-entry cleanup loop.
func NewLoginLimiter(cfg LoginLimiterConfig) *LoginLimiter {
	l := &LoginLimiter{
		entries: make(map[string]*limiterEntry),
		cfg:     cfg,
		done:    make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether another login attempt for key is permitted now.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// Stop terminates the cleanup loop.
func (l *LoginLimiter) Stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-l.cfg.CleanupInterval)
			l.mu.Lock()
			for key, e := range l.entries {
				if e.lastSeen.Before(cutoff) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
