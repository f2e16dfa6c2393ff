package resync

import (
	"sync"
	"sync/atomic"
)

// Once is similar to sync.Once but can be reset.
// Singletons are recreated between unit tests this way.
type Once struct {
	done atomic.Bool
	m    sync.Mutex
}

// Do calls the function f if and only if Do has not been invoked since the last Reset.
func (o *Once) Do(f func()) {
	if o.done.Load() {
		return
	}
	o.m.Lock()
	defer o.m.Unlock()
	if !o.done.Load() {
		defer o.done.Store(true)
		f()
	}
}

// Reset restores the initial state so that the next Do runs again.
func (o *Once) Reset() {
	o.m.Lock()
	defer o.m.Unlock()
	o.done.Store(false)
}
