package reporters

import (
	"errors"
	"testing"
	"time"

	"github.com/Adda-Baaj/reservation-desk/pkg/apiclient"
)

func TestNewEventFromChange(t *testing.T) {
	evt := NewEvent("console", apiclient.Change{
		Method:   "POST",
		Endpoint: "/api/reservations",
		Settled:  true,
		Err:      errors.New("seats must be positive"),
		Elapsed:  1500 * time.Millisecond,
	})
	if evt.OK || evt.Error != "seats must be positive" {
		t.Fatalf("unexpected outcome %#v", evt)
	}
	if evt.ElapsedMs != 1500 || evt.ClientID != "console" {
		t.Fatalf("unexpected metadata %#v", evt)
	}
	if evt.SettledAt.IsZero() {
		t.Fatalf("SettledAt should be set")
	}
}
