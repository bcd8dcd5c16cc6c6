package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to connected observers. A slow observer drops frames
// instead of stalling the simulation.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	published atomic.Uint64
	dropped   atomic.Uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:    1024,
			WriteBufferSize:   64 * 1024,
			EnableCompression: true,
			CheckOrigin:       func(r *http.Request) bool { return true },
		},
	}
}

// ClientCount returns the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Published returns how many frames were encoded and sent.
func (h *Hub) Published() uint64 {
	return h.published.Load()
}

// Dropped returns how many per-client sends were skipped because the client was behind.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Publish encodes f and queues it for every observer. With no observers it
// does nothing. f may be reused by the caller once Publish returns.
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}

	payload, err := json.Marshal(f)
	if err != nil {
		slog.Error("failed to encode frame", "tick", f.Tick, "error", err)
		return
	}
	h.published.Add(1)

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.dropped.Add(1)
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Close disconnects every observer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}

// Handler upgrades the request and streams frames until the observer disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.Close()

		c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		h.add(c)
		slog.Info("observer connected", "remote", r.RemoteAddr)

		// Writer goroutine.
		writeDone := make(chan struct{})
		go func() {
			defer close(writeDone)
			for payload := range c.send {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}()

		// Reader loop: observers send nothing, reading detects the close.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.remove(c)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second))

		select {
		case <-writeDone:
		case <-time.After(500 * time.Millisecond):
		}
		slog.Info("observer disconnected", "remote", r.RemoteAddr)
	}
}

// Server serves the hub over HTTP at /ws.
type Server struct {
	hub *Hub
	srv *http.Server
	ln  net.Listener
}

// NewServer creates a server for hub listening on addr.
func NewServer(addr string, hub *Hub) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{
		hub: hub,
		srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	s.ln = ln

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("stream server stopped", "error", err)
		}
	}()
	slog.Info("observer stream listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown stops accepting observers and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	// Hijacked websocket connections are not tracked by the http server.
	s.hub.Close()
	if err != nil {
		return fmt.Errorf("shutting down stream server: %w", err)
	}
	return nil
}
