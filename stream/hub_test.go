package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestPublishWithoutClients(t *testing.T) {
	h := NewHub()
	h.Publish(Frame{Tick: 1})
	if h.Published() != 0 {
		t.Error("frame should not be encoded without observers")
	}
}

func TestHubBroadcastsFrames(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	a := dial(t, url)
	defer a.Close()
	b := dial(t, url)
	defer b.Close()
	waitForClients(t, h, 2)

	h.Publish(Frame{
		Tick: 42,
		Fish: []FishState{{ID: 7, P: [3]float32{1, -2, 3}, V: [3]float32{0.5, 0, -0.5}}},
	})

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var got Frame
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Tick != 42 || len(got.Fish) != 1 || got.Fish[0].ID != 7 || got.Fish[0].P[1] != -2 {
			t.Errorf("unexpected frame %+v", got)
		}
	}
	if h.Published() != 1 {
		t.Errorf("expected 1 published frame, got %d", h.Published())
	}
}

func TestHubRemovesDisconnectedClients(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
}

func TestServerStartShutdown(t *testing.T) {
	h := NewHub()
	s := NewServer("127.0.0.1:0", h)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status %d", resp.StatusCode)
	}

	conn := dial(t, "ws://"+s.Addr()+"/ws")
	defer conn.Close()
	waitForClients(t, h, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	waitForClients(t, h, 0)
}

func TestServerStartBadAddr(t *testing.T) {
	if err := NewServer("256.0.0.1:-1", NewHub()).Start(); err == nil {
		t.Error("expected listen error")
	}
}
