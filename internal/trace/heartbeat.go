package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits driver-scope liveness events while a run is in progress.
// Beats without matching span ends point at a graph that never finishes.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat beats every interval until Stop. It returns nil when
// tracing is off or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	start := time.Now()
	go func() {
		defer close(h.done)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for n := 1; ; n++ {
			select {
			case now := <-tick.C:
				t.Emit(&Event{
					Time:    now,
					Seq:     NextSeq(),
					Kind:    KindHeartbeat,
					Scope:   ScopeDriver,
					Name:    "heartbeat",
					Detail:  "#" + strconv.Itoa(n),
					Elapsed: now.Sub(start),
				})
			case <-h.stop:
				return
			}
		}
	}()
	return h
}

// Stop ends the heartbeat and waits for the last beat to be emitted.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
