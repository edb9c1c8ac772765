// Package server exposes the chat engine and appointment API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/medbot-io/medbot/internal/booking"
	"github.com/medbot-io/medbot/internal/db"
)

// Turner processes one chat message for a session and returns the reply.
// The dialogue engine implements it; tests substitute their own.
type Turner interface {
	Turn(ctx context.Context, sessionID, message string) (string, error)
}

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server routes chat and appointment traffic to the engine and store.
type Server struct {
	cfg        Config
	db         *db.DB
	engine     Turner
	transcript *Transcript
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the given engine and database. The booking
// store also gets its REST routes mounted.
func New(cfg Config, database *db.DB, engine Turner, store *booking.Store) *Server {
	s := &Server{
		cfg:        cfg,
		db:         database,
		engine:     engine,
		transcript: NewTranscript(database),
	}
	s.router = s.buildRouter(store)
	return s
}

func (s *Server) buildRouter(store *booking.Store) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/chat", s.chatHandler)
	r.Get("/ws/chat", s.chatSocketHandler)

	if store != nil {
		booking.RegisterRoutes(r, store)
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

type chatAPIRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatAPIResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	reply, err := s.engine.Turn(r.Context(), req.SessionID, req.Message)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.transcript.Record(r.Context(), req.SessionID, req.Message, reply)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatAPIResponse{SessionID: req.SessionID, Reply: reply})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("medbot server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
