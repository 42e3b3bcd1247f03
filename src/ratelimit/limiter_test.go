package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_AllowsWithinWindow(t *testing.T) {
	l := New(3, time.Minute, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		d := l.Check("1.2.3.4", "example.com", now)
		if i == 0 {
			require.True(t, d.Allowed)
		} else {
			// Same domain within cooldown: rejected, but not for rate.
			assert.Equal(t, ReasonDomainCooldown, d.Reason)
		}
	}
}

func TestCheck_RejectsOverLimit(t *testing.T) {
	l := New(2, time.Minute, time.Minute)
	now := time.Now()

	require.True(t, l.Check("1.2.3.4", "a.com", now).Allowed)
	require.True(t, l.Check("1.2.3.4", "b.com", now).Allowed)

	d := l.Check("1.2.3.4", "c.com", now)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRateLimited, d.Reason)
}

func TestCheck_WindowResets(t *testing.T) {
	l := New(1, time.Minute, time.Second)
	now := time.Now()

	require.True(t, l.Check("1.2.3.4", "a.com", now).Allowed)
	require.False(t, l.Check("1.2.3.4", "b.com", now).Allowed)

	later := now.Add(time.Minute)
	assert.True(t, l.Check("1.2.3.4", "c.com", later).Allowed)
}

func TestCheck_DomainCooldownCrossesIPs(t *testing.T) {
	l := New(10, time.Minute, time.Minute)
	now := time.Now()

	require.True(t, l.Check("1.1.1.1", "example.com", now).Allowed)

	d := l.Check("2.2.2.2", "example.com", now.Add(10*time.Second))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonDomainCooldown, d.Reason)

	d = l.Check("2.2.2.2", "example.com", now.Add(2*time.Minute))
	assert.True(t, d.Allowed)
}

func TestCheck_CooldownRejectionStillChargesIP(t *testing.T) {
	l := New(2, time.Minute, time.Minute)
	now := time.Now()

	require.True(t, l.Check("1.2.3.4", "example.com", now).Allowed)
	// Cooldown rejection: the IP window is still charged.
	require.False(t, l.Check("1.2.3.4", "example.com", now).Allowed)

	// Third call exceeds the per-IP window even for a fresh domain.
	d := l.Check("1.2.3.4", "fresh.com", now)
	assert.Equal(t, ReasonRateLimited, d.Reason)
}

func TestSweep_DropsExpiredEntries(t *testing.T) {
	l := New(5, time.Minute, time.Minute)
	now := time.Now()

	l.Check("1.2.3.4", "example.com", now)
	l.sweep(now.Add(2 * time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.ipWindow)
	assert.Empty(t, l.domainLast)
}
