package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"waveguide/calculator"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	c        calculator.Calculator
}

func NewServer(addr string, upgrader websocket.Upgrader, c calculator.Calculator) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		c:        c,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("remote", r.RemoteAddr).Warn("websocket upgrade failed: ", err)
		return
	}
	defer conn.Close()

	log.WithField("remote", r.RemoteAddr).Info("client connected")
	hub := NewHub(s.c, conn)
	err = hub.run(r.Context())
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.WithField("remote", r.RemoteAddr).Info("client disconnected")
		return
	}
	log.WithFields(log.Fields{"remote": r.RemoteAddr, "err": err}).Warn("connection dropped")
}

// Handler routes /ws to the hub and /metrics to the prometheus registry.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("server listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
