// Package telemetry поднимает локальный диагностический HTTP-сервер:
// состояние сессии, ленту событий по websocket и pprof.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime"
	"sync"
	"time"

	"paraboloid-guesser/internal/event"
	"paraboloid-guesser/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Health - ответ /healthz.
type Health struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
	Clients    int    `json:"clients"`
	Events     uint64 `json:"events"`
	RequestID  string `json:"request_id,omitempty"`
}

// Server - подписчик событий игры и HTTP-обработчик диагностики.
// OnEvent вызывается из игрового цикла, HTTP - из своих горутин.
type Server struct {
	hub       *Hub
	logger    *log.Logger
	startTime time.Time

	mu     sync.RWMutex
	latest *game.Snapshot
	events uint64

	httpSrv *http.Server
}

// NewServer создает сервер. Подпишите его на диспетчер через Attach.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		hub:       NewHub(logger),
		logger:    logger,
		startTime: time.Now(),
	}
	s.hub.hello = s.helloMessage
	return s
}

// Attach подписывает сервер на все события игры.
func (s *Server) Attach(d *event.Dispatcher) {
	d.SubscribeAll(s, event.All...)
}

// OnEvent реализует event.Listener.
func (s *Server) OnEvent(e event.Event) {
	s.mu.Lock()
	s.events++
	if n, ok := e.Data.(game.Notification); ok {
		snap := n.Snapshot
		s.latest = &snap
	}
	s.mu.Unlock()
	s.hub.Broadcast(Message{Type: string(e.Type), Data: e.Data})
}

// Routes собирает роутер.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/session", s.handleSession)
	})
	r.Get("/ws", s.hub.ServeWS)
	r.Mount("/debug", middleware.Profiler())
	return r
}

// Start слушает addr в фоне. Пустой addr отключает сервер.
func (s *Server) Start(addr string) error {
	if addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen diagnostics on %s: %w", addr, err)
	}
	s.httpSrv = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("WARNING: diagnostics server stopped: %v", err)
		}
	}()
	s.logger.Printf("Diagnostics listening on http://%s", ln.Addr())
	return nil
}

// Shutdown останавливает HTTP и закрывает websocket-клиентов.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) snapshot() (*game.Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.events
}

func (s *Server) helloMessage() (Message, bool) {
	snap, _ := s.snapshot()
	if snap == nil {
		return Message{}, false
	}
	return Message{Type: "snapshot", Data: snap}, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, events := s.snapshot()
	s.writeJSON(w, http.StatusOK, Health{
		Status:     "ok",
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Clients:    s.hub.Clients(),
		Events:     events,
		RequestID:  middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	snap, _ := s.snapshot()
	if snap == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no game in progress"})
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("WARNING: writing response: %v", err)
	}
}
