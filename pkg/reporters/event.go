package reporters

import (
	"time"

	"github.com/Adda-Baaj/reservation-desk/pkg/apiclient"
)

// Event describes one settled API request.
type Event struct {
	ClientID  string    `json:"client_id"`
	Method    string    `json:"method"`
	Endpoint  string    `json:"endpoint"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms"`
	SettledAt time.Time `json:"settled_at"`
}

// NewEvent constructs an Event from a settled client state change.
func NewEvent(clientID string, ch apiclient.Change) Event {
	evt := Event{
		ClientID:  clientID,
		Method:    ch.Method,
		Endpoint:  ch.Endpoint,
		OK:        ch.Err == nil,
		ElapsedMs: ch.Elapsed.Milliseconds(),
		SettledAt: time.Now().UTC(),
	}
	if ch.Err != nil {
		evt.Error = ch.Err.Error()
	}
	return evt
}
