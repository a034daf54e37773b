package apiclient

import (
	"sync"
	"time"
)

// Change describes one write to a client's request state.
type Change struct {
	Method   string
	Endpoint string
	// Settled is false when the write marks an operation as pending.
	Settled bool
	Busy    bool
	Err     error
	Elapsed time.Duration
}

// Listener receives state changes. It runs on the goroutine that issued the
// operation, after the state has been written.
type Listener func(Change)

// State holds the busy flag and last error shared by every operation of one
// Client. Field access is guarded; operations themselves are not serialized,
// so overlapping calls race and the last one to settle wins.
type State struct {
	mu        sync.Mutex
	busy      bool
	lastErr   error
	nextID    int
	listeners map[int]Listener
}

// Busy reports whether an operation is in flight.
func (s *State) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastError returns the failure recorded by the most recently settled
// operation, or nil.
func (s *State) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Watch registers fn for every subsequent change and returns a func that
// removes it.
func (s *State) Watch(fn Listener) (unwatch func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// begin enters Pending: busy=true, lastError=nil.
func (s *State) begin(method, endpoint string) {
	s.write(Change{Method: method, Endpoint: endpoint, Busy: true})
}

// settle enters Settled: busy=false, lastError=err.
func (s *State) settle(method, endpoint string, err error, elapsed time.Duration) {
	s.write(Change{
		Method:   method,
		Endpoint: endpoint,
		Settled:  true,
		Err:      err,
		Elapsed:  elapsed,
	})
}

func (s *State) write(ch Change) {
	s.mu.Lock()
	s.busy = ch.Busy
	s.lastErr = ch.Err
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ch)
	}
}
