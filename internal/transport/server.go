// Package transport exposes the widget over HTTP: a websocket for the host page,
// a websocket for the browser front end, and small JSON status endpoints.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/config"
	"github.com/Faultbox/lightrig/internal/engine/input"
	"github.com/Faultbox/lightrig/internal/hostsync"
	"github.com/Faultbox/lightrig/internal/widget"
)

// Widget is the part of widget.Widget the server drives.
type Widget interface {
	HostMessage(data []byte)
	Pointer(e input.Event)
	SetColor(c angle.Color)
	Reset()
	SetVisible(visible bool)
	Republish()
	Snapshot(ctx context.Context) (widget.Snapshot, error)
}

// Server routes HTTP and websocket traffic to a widget.
type Server struct {
	cfg      config.ServerConfig
	widget   Widget
	host     *Hub
	ui       *Hub
	upgrader websocket.Upgrader
	started  time.Time
	log      *zap.Logger

	httpServer *http.Server
}

// NewServer creates a server. host and ui are the hubs the widget emits to.
func NewServer(cfg config.ServerConfig, w Widget, host, ui *Hub, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		widget:  w,
		host:    host,
		ui:      ui,
		started: time.Now(),
		log:     log,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.HostPath, s.handleHost)
	mux.HandleFunc(s.cfg.UIPath, s.handleUI)
	mux.HandleFunc("/prompt", s.handlePrompt)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- s.httpServer.Serve(ln) }()
	s.log.Info("Listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.host.Close()
	s.ui.Close()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (s *Server) upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, bool) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("Websocket upgrade failed", zap.String("path", r.URL.Path), zap.Error(err))
		return nil, false
	}
	if s.cfg.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.ReadLimit)
	}
	return conn, true
}

// handleHost connects the host page. It is greeted with VIEWER_READY and then
// receives every ANGLE_UPDATE; its messages feed the controller.
func (s *Server) handleHost(w http.ResponseWriter, r *http.Request) {
	conn, ok := s.upgrade(w, r)
	if !ok {
		return
	}
	defer conn.Close()

	if err := s.host.add(conn, hostsync.NewReady()); err != nil {
		s.log.Debug("Host greeting failed", zap.Error(err))
		return
	}
	defer s.host.remove(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.widget.HostMessage(data)
	}
}

// handleUI connects a browser front end. It gets the full scene, then pointer
// and control events flow back.
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	conn, ok := s.upgrade(w, r)
	if !ok {
		return
	}
	defer conn.Close()

	if err := s.ui.add(conn, nil); err != nil {
		return
	}
	defer s.ui.remove(conn)
	s.widget.Republish()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := dispatchUI(s.widget, data); err != nil {
			s.log.Debug("Dropping ui event", zap.Error(err))
		}
	}
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, err := s.widget.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":   "ok",
		"uptime_s": time.Since(s.started).Seconds(),
		"hosts":    s.host.Count(),
		"uis":      s.ui.Count(),
	}
	if snap, err := s.widget.Snapshot(r.Context()); err == nil {
		resp["phase"] = snap.Phase
	} else {
		resp["status"] = "stopped"
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
