package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReservationResponseDecodesServerShape(t *testing.T) {
	raw := `{"reservations":[{"id":"1","name":"A","email":"a@x.com","date":"2024-01-01","seats":2},{"name":"B","email":"b@x.com","date":"2024-02-02","seats":3}]}`

	var resp ReservationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(resp.Reservations))
	}
	if resp.Reservations[0].ID != "1" || resp.Reservations[1].ID != "" {
		t.Fatalf("order or ids not preserved: %#v", resp.Reservations)
	}
}

func TestReservationOmitsEmptyID(t *testing.T) {
	out, err := json.Marshal(Reservation{Name: "B", Email: "b@x.com", Date: "2024-02-02", Seats: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(out); got != `{"name":"B","email":"b@x.com","date":"2024-02-02","seats":3}` {
		t.Fatalf("unexpected json %s", got)
	}
}

func TestReservationDay(t *testing.T) {
	day, err := Reservation{Date: "2024-07-15"}.Day()
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if day.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", day.Weekday())
	}
	if _, err := (Reservation{Date: "15/07/2024"}).Day(); err == nil {
		t.Fatalf("expected parse error for non calendar date")
	}
}
