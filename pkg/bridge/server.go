package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/orchestrator"
	"github.com/beaconsense/beacon-go/pkg/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// Websocket message types.
const (
	TypeCall        = "call"
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypeResult      = "result"
	TypeEvent       = "event"
)

// sendQueueSize bounds the messages queued for one websocket client.
const sendQueueSize = 64

// Inbound is a message from the UI layer.
type Inbound struct {
	ID     uint64         `json:"id"`
	Type   string         `json:"type"`
	Method string         `json:"method,omitempty"`
	Stream string         `json:"stream,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
}

// Outbound is a message to the UI layer.
type Outbound struct {
	ID     uint64  `json:"id,omitempty"`
	Type   string  `json:"type"`
	Result *Result `json:"result,omitempty"`
	Stream string  `json:"stream,omitempty"`
	Data   any     `json:"data,omitempty"`
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// Addr is the listen address for Run.
	Addr string

	// Version is reported by /healthz.
	Version string

	// WriteTimeout bounds a single websocket write.
	WriteTimeout time.Duration

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "127.0.0.1:8765",
		WriteTimeout: 10 * time.Second,
	}
}

// Status is the /api/status payload.
type Status struct {
	SessionID     string          `json:"session_id"`
	Attached      bool            `json:"attached"`
	Bound         bool            `json:"bound"`
	Authorization string          `json:"authorization,omitempty"`
	Radio         string          `json:"radio,omitempty"`
	Broadcasting  bool            `json:"broadcasting"`
	Ranging       []string        `json:"ranging"`
	Monitoring    []string        `json:"monitoring"`
	Subscribed    map[string]bool `json:"subscribed"`
	Connections   int             `json:"connections"`
}

// Server carries dispatcher calls and event streams over HTTP and
// websockets.
type Server struct {
	config     ServerConfig
	orch       *orchestrator.Orchestrator
	dispatcher *Dispatcher
	router     chi.Router
	upgrader   websocket.Upgrader

	mu     sync.Mutex
	conns  map[*wsConn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewServer creates a server for orch.
func NewServer(orch *orchestrator.Orchestrator, cfg ServerConfig) *Server {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultServerConfig().WriteTimeout
	}
	s := &Server{
		config:     cfg,
		orch:       orch,
		dispatcher: NewDispatcher(orch, cfg.Logger),
		conns:      make(map[*wsConn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
			Subprotocols:    version.SupportedSubprotocols(),
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWS)
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(20 * time.Second))
		api.Get("/status", s.handleStatus)
		api.Get("/methods", s.handleMethods)
		api.Post("/call/{method}", s.handleCall)
	})
	s.router = r
	return s
}

// Dispatcher returns the server's dispatcher.
func (s *Server) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.debug("bridge listening", "addr", s.config.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		s.Close()
		return err
	case err := <-errCh:
		s.Close()
		return err
	}
}

// Close drops every websocket connection and waits for their handlers.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	conns := make([]*wsConn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
	s.wg.Wait()
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	v := s.config.Version
	if v == "" {
		v = "dev"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"version":  v,
		"protocol": version.Current,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	hub := s.orch.Hub()
	st := Status{
		SessionID:  s.orch.SessionID(),
		Attached:   s.orch.Attached(),
		Bound:      s.orch.Bound(),
		Ranging:    identifiers(s.orch.Lifecycle().RangingRegions()),
		Monitoring: identifiers(s.orch.Lifecycle().MonitoredRegions()),
		Subscribed: map[string]bool{
			eventhub.ChannelRanging:       hub.Ranging.Subscribed(),
			eventhub.ChannelMonitoring:    hub.Monitoring.Subscribed(),
			eventhub.ChannelRadioState:    hub.RadioState.Subscribed(),
			eventhub.ChannelAuthorization: hub.Authorization.Subscribed(),
		},
	}
	if auth, err := s.orch.AuthorizationStatus(); err == nil {
		st.Authorization = auth.String()
	}
	if radio, err := s.orch.RadioPowerState(); err == nil {
		st.Radio = RadioStateName(radio)
	}
	st.Broadcasting, _ = s.orch.IsBroadcasting()

	s.mu.Lock()
	st.Connections = len(s.conns)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleMethods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"methods": s.dispatcher.Methods(),
		"streams": Streams(),
	})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var args map[string]any
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_args", err.Error())
		return
	}

	res, err := s.dispatcher.Call(r.Context(), chi.URLParam(r, "method"), args)
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, "call_timeout", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if _, ok := version.Negotiate(websocket.Subprotocols(r)); !ok {
		writeError(w, http.StatusBadRequest, "unsupported_subprotocol", "no supported subprotocol offered")
		return
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.debug("websocket upgrade failed", "err", err)
		return
	}

	c := &wsConn{
		ws:      ws,
		out:     make(chan Outbound, sendQueueSize),
		done:    make(chan struct{}),
		subs:    make(map[string]*eventhub.Subscription),
		timeout: s.config.WriteTimeout,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ws.Close()
		return
	}
	s.conns[c] = struct{}{}
	s.wg.Add(2)
	s.mu.Unlock()

	s.debug("websocket connected", "remote", r.RemoteAddr)
	go func() {
		defer s.wg.Done()
		c.writeLoop()
	}()

	defer func() {
		c.close()
		c.cancelAll()
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		s.debug("websocket disconnected", "remote", r.RemoteAddr)
		s.wg.Done()
	}()

	for {
		var in Inbound
		if err := ws.ReadJSON(&in); err != nil {
			return
		}
		s.handleMessage(c, in)
	}
}

func (s *Server) handleMessage(c *wsConn, in Inbound) {
	reply := func(r Result) {
		c.send(Outbound{ID: in.ID, Type: TypeResult, Result: &r})
	}

	switch in.Type {
	case TypeCall:
		s.dispatcher.Dispatch(in.Method, in.Args, reply)

	case TypeSubscribe:
		sub, err := s.dispatcher.Subscribe(in.Stream, in.Args, func(ev StreamEvent) {
			c.send(Outbound{Type: TypeEvent, Stream: ev.Stream, Data: ev.Data})
		})
		if err != nil {
			reply(Error(err))
			return
		}
		c.track(in.Stream, sub)
		reply(Success(true))

	case TypeUnsubscribe:
		reply(Success(c.cancel(in.Stream)))

	default:
		reply(Error(fmt.Errorf("%w: unknown message type %q", orchestrator.ErrInvalidArgument, in.Type)))
	}
}

func (s *Server) debug(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}

// wsConn is one websocket client. Writes go through out; gorilla
// connections allow a single concurrent writer.
type wsConn struct {
	ws      *websocket.Conn
	out     chan Outbound
	done    chan struct{}
	once    sync.Once
	timeout time.Duration

	mu   sync.Mutex
	subs map[string]*eventhub.Subscription
}

// send queues m without blocking. A client that lets its queue fill up is
// disconnected so engine callbacks never wait on the network. It reports
// false once the connection is closed.
func (c *wsConn) send(m Outbound) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- m:
		return true
	default:
		c.close()
		return false
	}
}

func (c *wsConn) writeLoop() {
	for {
		select {
		case m := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.timeout))
			if err := c.ws.WriteJSON(m); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *wsConn) track(stream string, sub *eventhub.Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[stream] = sub
}

func (c *wsConn) cancel(stream string) bool {
	c.mu.Lock()
	sub, ok := c.subs[stream]
	delete(c.subs, stream)
	c.mu.Unlock()
	if ok {
		sub.Cancel()
	}
	return ok
}

func (c *wsConn) cancelAll() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]*eventhub.Subscription)
	c.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
