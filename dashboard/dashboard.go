// Package dashboard is the optional, non-core live debug view: it republishes decoded telemetry
// frames to connected browsers over a websocket, the way the teacher's server/{fastview,
// root_view,cell_views} republished gridworld state. Nothing in the scheduler or localizer
// depends on this package; an opmode harness wires it up only when configured to.
package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"corebot/telemetry"
)

const (
	writeWait     = 1 * time.Second
	pongWait      = 60 * time.Second
	pingResolution = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves a single-page live view over a websocket per client, broadcasting every frame
// it is fed via Publish to all currently connected clients.
type Server struct {
	addr   string
	logger zerolog.Logger

	mu      sync.Mutex
	clients map[chan telemetry.Frame]struct{}

	router *mux.Router
}

// New builds a Server listening on addr.
func New(addr string, logger zerolog.Logger) *Server {
	s := &Server{
		addr:    addr,
		logger:  logger.With().Str("component", "dashboard.Server").Logger(),
		clients: make(map[chan telemetry.Frame]struct{}),
		router:  mux.NewRouter(),
	}
	s.router.HandleFunc("/", s.serveIndex)
	s.router.HandleFunc("/ws", s.serveWebsocket)
	return s
}

// Publish fans f out to every connected client's buffered channel, dropping the frame for any
// client whose channel is currently full rather than blocking the publisher.
func (s *Server) Publish(f telemetry.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c <- f:
		default:
		}
	}
}

// Run serves HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Close()
	})
	if err := g.Wait(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	updates := make(chan telemetry.Frame, 64)
	s.register(updates)
	defer s.unregister(updates)

	s.publishLoop(r.Context(), ws, updates)
}

func (s *Server) register(c chan telemetry.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) unregister(c chan telemetry.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

func (s *Server) publishLoop(ctx context.Context, ws *websocket.Conn, updates chan telemetry.Frame) {
	pubCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	pinger := channerics.NewTicker(pubCtx.Done(), pingResolution)
	for update := range channerics.OrDone(pubCtx.Done(), updates) {
		select {
		case <-pinger:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		default:
		}
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := ws.WriteJSON(frameToJSON(update)); err != nil {
			return
		}
	}
}

const indexHTML = `<!DOCTYPE html>
<html><head><title>corebot dashboard</title></head>
<body>
<pre id="log"></pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const el = document.getElementById("log");
  el.textContent += ev.data + "\n";
};
</script>
</body></html>`
