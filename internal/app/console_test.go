package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Adda-Baaj/reservation-desk/internal/config"
	"github.com/Adda-Baaj/reservation-desk/internal/domain"
)

func newTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:                "reservation-desk-test",
		APIBaseURL:             baseURL,
		ReservationsPath:       "/api/reservations",
		RequestTimeout:         2 * time.Second,
		StorageType:            "bbolt",
		JournalPath:            filepath.Join(t.TempDir(), "journal.db"),
		JournalTTL:             time.Hour,
		JournalCleanupInterval: time.Hour,
	}
}

func reservationsAPI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/reservations":
			if got := r.URL.RawQuery; got != "" && got != "date=2024-01-01&email=a%40x.com" {
				t.Errorf("unexpected query %q", got)
			}
			_, _ = w.Write([]byte(`{"reservations":[{"id":"1","name":"A","email":"a@x.com","date":"2024-01-01","seats":2}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/reservations":
			var in domain.Reservation
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Errorf("decode: %v", err)
			}
			if in.Seats <= 0 {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("seats must be positive"))
				return
			}
			in.ID = "2"
			_ = json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/reservations/1":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/reservations/2":
			_, _ = w.Write([]byte(`{"deleted":"2"}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestConsoleListRendersTable(t *testing.T) {
	srv := reservationsAPI(t)
	defer srv.Close()

	var out bytes.Buffer
	console, err := NewConsole(context.Background(), newTestConfig(t, srv.URL), nil, &out)
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	defer console.Close()

	if err := console.List(context.Background(), ListFilter{Date: "2024-01-01", Email: "a@x.com"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "a@x.com") || !strings.Contains(text, "2024-01-01 (Mon)") {
		t.Fatalf("unexpected table:\n%s", text)
	}
	if console.Client().Busy() || console.Client().LastError() != nil {
		t.Fatalf("unexpected client state busy=%v err=%v", console.Client().Busy(), console.Client().LastError())
	}
}

func TestConsoleCreateFailureSurfacesLastError(t *testing.T) {
	srv := reservationsAPI(t)
	defer srv.Close()

	var out bytes.Buffer
	console, err := NewConsole(context.Background(), newTestConfig(t, srv.URL), nil, &out)
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	defer console.Close()

	err = console.Create(context.Background(), domain.Reservation{Name: "B", Email: "b@x.com", Date: "2024-02-02", Seats: 0})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "seats must be positive") {
		t.Fatalf("error should carry server body, got %v", err)
	}

	if err := console.Create(context.Background(), domain.Reservation{Name: "B", Email: "b@x.com", Date: "2024-02-02", Seats: 3}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(out.String(), `"id": "2"`) {
		t.Fatalf("created record not rendered:\n%s", out.String())
	}
}

func TestConsoleDeleteNoContentIsDecodeFailure(t *testing.T) {
	srv := reservationsAPI(t)
	defer srv.Close()

	console, err := NewConsole(context.Background(), newTestConfig(t, srv.URL), nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	defer console.Close()

	err = console.Delete(context.Background(), "1")
	if !errors.Is(err, ErrRequestFailed) || !strings.Contains(err.Error(), "unexpected end of JSON input") {
		t.Fatalf("expected decode failure, got %v", err)
	}
	if err := console.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := console.Delete(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestConsoleHistoryListsJournaledSettlements(t *testing.T) {
	srv := reservationsAPI(t)
	defer srv.Close()

	var out bytes.Buffer
	console, err := NewConsole(context.Background(), newTestConfig(t, srv.URL), nil, &out)
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	defer console.Close()

	_ = console.List(context.Background(), ListFilter{})
	_ = console.Delete(context.Background(), "1")
	out.Reset()

	if err := console.History(10); err != nil {
		t.Fatalf("History: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 records, got:\n%s", out.String())
	}
	if !strings.Contains(lines[1], "DELETE") || !strings.Contains(lines[1], "error: unexpected end of JSON input") {
		t.Fatalf("newest record should be the failed delete, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "GET") || !strings.Contains(lines[2], "ok") {
		t.Fatalf("unexpected list record %q", lines[2])
	}
}

func TestNewConsoleRejectsBadStorage(t *testing.T) {
	cfg := newTestConfig(t, "http://localhost:8000")
	cfg.StorageType = "redis"
	if _, err := NewConsole(context.Background(), cfg, nil, nil); err == nil {
		t.Fatalf("expected storage error")
	}
}
