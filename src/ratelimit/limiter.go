package ratelimit

import (
	"sync"
	"time"
)

const (
	ReasonRateLimited    = "Rate limit exceeded"
	ReasonDomainCooldown = "Domain cooldown"
)

// Decision is the result of a limiter check.
type Decision struct {
	Allowed bool
	Reason  string
}

type ipEntry struct {
	count   int
	resetAt time.Time
}

// Limiter gates entry to the evaluation pipeline with a fixed per-IP request
// window plus an IP-independent per-domain cooldown. State is in-memory only;
// construct one at service start and pass it by reference.
type Limiter struct {
	mu sync.Mutex

	perIP    int
	window   time.Duration
	cooldown time.Duration

	ipWindow   map[string]*ipEntry
	domainLast map[string]time.Time
}

func New(perIP int, window, cooldown time.Duration) *Limiter {
	if perIP <= 0 {
		perIP = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}

	l := &Limiter{
		perIP:      perIP,
		window:     window,
		cooldown:   cooldown,
		ipWindow:   make(map[string]*ipEntry),
		domainLast: make(map[string]time.Time),
	}

	// Sweep expired entries periodically so the maps stay bounded.
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			l.sweep(time.Now())
		}
	}()

	return l
}

// Check consumes one request from ip's window and then checks the domain
// cooldown. The ordering is deliberate and load-bearing: the IP counter is
// charged even when the domain cooldown later rejects the request.
func (l *Limiter) Check(ip, domain string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.ipWindow[ip]
	if entry == nil || !now.Before(entry.resetAt) {
		entry = &ipEntry{resetAt: now.Add(l.window)}
		l.ipWindow[ip] = entry
	}
	entry.count++
	if entry.count > l.perIP {
		return Decision{Allowed: false, Reason: ReasonRateLimited}
	}

	if last, ok := l.domainLast[domain]; ok && now.Sub(last) < l.cooldown {
		return Decision{Allowed: false, Reason: ReasonDomainCooldown}
	}
	l.domainLast[domain] = now

	return Decision{Allowed: true}
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, entry := range l.ipWindow {
		if !now.Before(entry.resetAt) {
			delete(l.ipWindow, ip)
		}
	}
	for domain, last := range l.domainLast {
		if now.Sub(last) >= l.cooldown {
			delete(l.domainLast, domain)
		}
	}
}
