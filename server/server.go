package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"dungeon-layout/config"
	"dungeon-layout/events"
	"dungeon-layout/generation"

	"github.com/coder/websocket"
	"github.com/pkg/errors"
)

// DefaultMaxGridSize caps the grid a client may request
const DefaultMaxGridSize = 400

// Server generates layouts on request over websockets and plain HTTP.
//
// Routes:
//
//	/generate  websocket; each {"type":"generate"} request is answered with
//	           progress envelopes and one layout envelope
//	/watch     websocket; receives every layout generated by any client
//	/layout    HTTP GET; query parameters seed, rooms and size
//	/healthz   liveness probe
type Server struct {
	defaults    config.Generation
	maxGridSize int
	logger      *log.Logger
	hub         *Hub
	sequence    atomic.Uint64
	mux         *http.ServeMux
}

// NewServer creates a server whose requests start from defaults
func NewServer(defaults config.Generation, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		defaults:    defaults,
		maxGridSize: DefaultMaxGridSize,
		logger:      logger,
		hub:         NewHub(),
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("/generate", s.handleGenerate)
	s.mux.HandleFunc("/watch", s.handleWatch)
	s.mux.HandleFunc("/layout", s.handleLayout)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

// SetMaxGridSize changes the largest grid a client may request
func (s *Server) SetMaxGridSize(n int) {
	s.maxGridSize = n
}

// Hub returns the watcher hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP handler with every route
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Printf("Layout server listening on %s", addr)

	select {
	case err := <-errc:
		return errors.Wrap(err, "layout server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// envelope encodes a message with the next sequence number
func (s *Server) envelope(msgType string, payload any) []byte {
	data, err := json.Marshal(Envelope{
		Sequence: s.sequence.Add(1),
		Type:     msgType,
		Payload:  payload,
	})
	if err != nil {
		s.logger.Printf("Failed to encode %s message: %v", msgType, err)
		return nil
	}
	return data
}

// generate runs one layout, calling progress on each phase change
func (s *Server) generate(cfg config.Generation, progress func(Progress)) (LayoutSnapshot, error) {
	em := events.NewEventManager()
	if progress != nil {
		em.Subscribe(events.EventPhaseChanged, func(e events.Event) {
			pc := e.(events.PhaseChanged)
			progress(Progress{Phase: pc.Phase.String(), Rooms: pc.Rooms})
		})
	}

	layout, err := generation.NewGenerator(cfg, generation.WithEvents(em)).Run()
	if err != nil {
		return LayoutSnapshot{}, err
	}

	snap := NewLayoutSnapshot(layout)
	s.logger.Printf("Generated layout seed=%d rooms=%d corridors=%d", snap.Seed, snap.Summary.Rooms, snap.Summary.Corridors)
	return snap, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Printf("Generate accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	send := func(data []byte) bool {
		if data == nil {
			return true
		}
		return conn.Write(ctx, websocket.MessageText, data) == nil
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var intent IntentEnvelope
		if err := json.Unmarshal(data, &intent); err != nil {
			if !send(s.envelope(MessageError, ErrorMessage{Message: "malformed request"})) {
				return
			}
			continue
		}
		if intent.Type != MessageGenerate {
			if !send(s.envelope(MessageError, ErrorMessage{Message: "unknown request type " + intent.Type})) {
				return
			}
			continue
		}

		cfg, err := DecodeGenerateRequest(s.defaults, intent.Config, s.maxGridSize)
		if err != nil {
			if !send(s.envelope(MessageError, ErrorMessage{Message: err.Error()})) {
				return
			}
			continue
		}

		snap, err := s.generate(cfg, func(p Progress) {
			send(s.envelope(MessageProgress, p))
		})
		if err != nil {
			if !send(s.envelope(MessageError, ErrorMessage{Message: err.Error()})) {
				return
			}
			continue
		}

		msg := s.envelope(MessageLayout, snap)
		if !send(msg) {
			return
		}
		s.hub.Broadcast(msg)
	}
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Printf("Watch accept failed: %v", err)
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Registered before the greeting, so a client that has read it will
	// see every later broadcast
	hello := s.envelope(MessageHello, map[string]int{"watchers": s.hub.Count()})
	if err := conn.Write(r.Context(), websocket.MessageText, hello); err != nil {
		return
	}

	// Watchers only listen; reading detects the close
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := s.defaults
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"rooms", &cfg.RoomCount},
		{"size", &cfg.GridSize},
	} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "bad "+p.name, http.StatusBadRequest)
				return
			}
			*p.dst = n
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "bad seed", http.StatusBadRequest)
			return
		}
		cfg.Seed = seed
	}

	if err := checkGeneration(cfg, s.maxGridSize); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.generate(cfg, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}
