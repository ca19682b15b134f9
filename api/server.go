// Package api exposes a running game over HTTP so a browser can draw it and
// steer it. Frames are streamed over a websocket as they are rendered.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Game is the part of the controller the api drives.
type Game interface {
	Frame() controller.Frame
	RequestDirection(rules.Direction)
	Restart() error
}

// Server is the http api for a single game.
type Server struct {
	hs       *http.Server
	game     Game
	hub      *Hub
	limiter  *rate.Limiter
	upgrader websocket.Upgrader
}

// New builds a server listening on addr. Frames rendered into hub are pushed
// to every connected socket.
func New(addr string, game Game, hub *Hub, limit rate.Limit, burst int) *Server {
	s := &Server{
		game:    game,
		hub:     hub,
		limiter: rate.NewLimiter(limit, burst),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	router := httprouter.New()
	router.GET("/game", s.getGame)
	router.POST("/game/direction/:direction", s.postDirection)
	router.POST("/game/restart", s.postRestart)
	router.GET("/socket", s.socket)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// Handler returns the root http handler.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	log.Infof("snake api listening on %s", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	if err != nil {
		log.WithError(err).Error("error while listening")
	}
	return err
}

// Shutdown stops the server, waiting for in flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.game.Frame())
}

func (s *Server) postDirection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many direction changes")
		return
	}
	d, ok := parseDirection(ps.ByName("direction"))
	if !ok {
		writeError(w, http.StatusBadRequest, rules.ErrInvalidDirection.Error())
		return
	}
	s.game.RequestDirection(d)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postRestart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	err := s.game.Restart()
	if err == controller.ErrNotGameOver {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		log.WithError(err).Error("restart failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.game.Frame())
}

func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Debug("error while closing websocket")
		}
	}()

	frames := s.hub.Subscribe()
	defer s.hub.Unsubscribe(frames)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := c.WriteJSON(s.game.Frame()); err != nil {
		log.WithError(err).Debug("unable to write initial frame")
		return
	}
	for {
		select {
		case f := <-frames:
			if err := c.WriteJSON(f); err != nil {
				log.WithError(err).Debug("unable to write frame")
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// parseDirection accepts a direction name or a browser arrow key code.
func parseDirection(param string) (rules.Direction, bool) {
	if d, ok := rules.ParseDirection(param); ok {
		return d, true
	}
	code, err := strconv.Atoi(param)
	if err != nil {
		return 0, false
	}
	return rules.DirectionForKeyCode(code)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to encode response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
