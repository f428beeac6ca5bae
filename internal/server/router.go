// Package server wires the HTTP API of the sync backend.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/notesync/internal/server/handlers"
	"github.com/iudanet/notesync/internal/server/middleware"
	"github.com/iudanet/notesync/internal/server/room"
	"github.com/iudanet/notesync/internal/server/storage"
)

// HealthPath is the public liveness endpoint.
const HealthPath = "/api/v1/health"

// Deps holds everything the router needs.
type Deps struct {
	Logger      *slog.Logger
	Storage     storage.EntityStorage
	Hub         *room.Hub
	RateLimiter *middleware.RateLimiter // RateLimiter nil отключает ограничение
	Checks      map[string]handlers.Pinger
	Version     string
	JWT         handlers.JWTConfig
	JoinTimeout time.Duration
}

// NewRouter builds the HTTP handler of the server.
//
//	GET  /api/v1/health
//	GET  /api/v1/entities/{type}      (auth)
//	POST /api/v1/mutations            (auth)
//	GET  /api/v1/rooms/{roomID}/ws    (auth, websocket)
func NewRouter(d Deps) http.Handler {
	health := handlers.NewHealthHandler(d.Logger, d.Version, d.Checks)
	entities := handlers.NewEntityHandler(d.Logger, d.Storage)
	rooms := handlers.NewRoomHandler(d.Hub, d.Logger, d.JoinTimeout)

	r := mux.NewRouter()
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{HealthPath}))

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	authed := apiV1.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware(d.Logger, d.JWT))
	if d.RateLimiter != nil {
		authed.Use(d.RateLimiter.Middleware())
	}
	authed.HandleFunc("/entities/{type}", entities.List).Methods(http.MethodGet)
	authed.HandleFunc("/mutations", entities.Mutate).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{roomID}/ws", rooms.Serve).Methods(http.MethodGet)

	return r
}
