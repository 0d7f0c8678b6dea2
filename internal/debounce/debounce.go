// Package debounce coalesces bursts of calls per key into one call after
// a quiet period.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait, timers: map[string]*time.Timer{}}
}

// Trigger schedules fn for key, cancelling any call still pending for the
// same key. Only the last fn in a burst runs.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		current := d.timers[key] == timer
		if current {
			delete(d.timers, key)
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
	d.timers[key] = timer
}

func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
		delete(d.timers, key)
	}
}

// Stop drops every pending call. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}
