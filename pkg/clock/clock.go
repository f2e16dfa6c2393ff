package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
// Snapshots of a notebook are stamped through it so that tests can freeze time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// TestClock is a manual clock only moving when asked.
type TestClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewTestClockAt(date time.Time) *TestClock {
	return &TestClock{now: date}
}

// FastForward moves the clock and returns the new time.
func (c *TestClock) FastForward(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

var (
	current   Clock = systemClock{}
	currentMu sync.RWMutex
)

// Now is the same as time.Now() but makes possible to control time from unit tests.
func Now() time.Time {
	currentMu.RLock()
	c := current
	currentMu.RUnlock()
	return c.Now()
}

// FreezeAt stops the time at the given date.
func FreezeAt(date time.Time) *TestClock {
	testClock := NewTestClockAt(date)
	currentMu.Lock()
	current = testClock
	currentMu.Unlock()
	return testClock
}

// Freeze stops the time at the current date.
func Freeze() *TestClock {
	return FreezeAt(time.Now())
}

// Unfreeze restores the system clock.
func Unfreeze() {
	currentMu.Lock()
	current = systemClock{}
	currentMu.Unlock()
}
