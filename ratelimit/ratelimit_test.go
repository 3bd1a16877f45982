package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	limiter := NewFixedWindow(3, time.Minute)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	// Other keys have their own windows.
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestFixedWindowResets(t *testing.T) {
	now := time.Now()
	limiter := NewFixedWindow(1, time.Minute)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, limiter.Allow("1.2.3.4"))
}
