package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paraboloid-guesser/internal/event"
	"paraboloid-guesser/internal/game"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(log.New(io.Discard, "", 0))
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		s.hub.Close()
		ts.Close()
	})
	return s, ts
}

func sampleNotification(round int) game.Notification {
	return game.Notification{Snapshot: game.Snapshot{
		Phase:    "awaiting_guess",
		Round:    round,
		Rounds:   3,
		Equation: "z = 1.000 x² + 1.000 y² + 0.000",
	}}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.RequestID == "" {
		t.Fatalf("health %+v", h)
	}
}

func TestSessionEndpoint(t *testing.T) {
	s, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/session")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("before any game: status %d", resp.StatusCode)
	}

	s.OnEvent(event.Event{Type: event.RoundStarted, Data: sampleNotification(2)})

	resp, err = http.Get(ts.URL + "/api/v1/session")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var snap game.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Round != 2 || snap.Phase != "awaiting_guess" {
		t.Fatalf("snapshot %+v", snap)
	}
}

func TestEventFeed(t *testing.T) {
	s, ts := newTestServer(t)
	d := event.NewDispatcher()
	s.Attach(d)
	d.Dispatch(event.Event{Type: event.RoundStarted, Data: sampleNotification(1)})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello Message
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatal(err)
	}
	if hello.Type != "snapshot" {
		t.Fatalf("first frame %q", hello.Type)
	}

	d.Dispatch(event.Event{Type: event.GameOver, Data: sampleNotification(3)})
	var msg struct {
		Type string            `json:"type"`
		Data game.Notification `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != string(event.GameOver) || msg.Data.Snapshot.Round != 3 {
		t.Fatalf("frame %+v", msg)
	}
	if s.hub.Clients() != 1 {
		t.Fatalf("clients = %d", s.hub.Clients())
	}
}

func TestProfilerMounted(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/debug/pprof/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pprof index status %d", resp.StatusCode)
	}
}

func TestStartDisabled(t *testing.T) {
	s := NewServer(log.New(io.Discard, "", 0))
	if err := s.Start(""); err != nil {
		t.Fatal(err)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}
