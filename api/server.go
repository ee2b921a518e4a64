package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/config"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/services"
	"github.com/inkwell-app/inkwell-backend/storage"
)

// Deps are the process-wide handles the server needs. They are built once
// in main and passed explicitly so tests can substitute any of them.
type Deps struct {
	Database database.Database
	Provider services.Provider
	Codec    *auth.Codec
	Images   *storage.ImageStore
	Config   map[string]string
}

type Server struct {
	*http.Server
}

func NewServer(deps Deps) (Server, error) {
	c := deps.Config

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	router, err := newRouter(deps)
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server}, nil
}

func newRouter(deps Deps) (*chi.Mux, error) {
	c := deps.Config

	views, err := NewViews()
	if err != nil {
		return nil, err
	}

	secureCookies := config.GetString(c, "ENV", "development") == "production"
	handlers := initializeHandlers(deps.Database, deps.Provider, deps.Codec, deps.Images, views, secureCookies)
	guard := newAuthMiddleware(deps.Codec)

	router := chi.NewRouter()
	router.Use(recoverPanics)
	router.Use(requestLogging)

	if origins := config.GetString(c, "ACCEPTED_ORIGINS", ""); origins != "" {
		router.Use(corsMiddleware(strings.Split(origins, ",")))
	}

	publicDir := config.GetString(c, "PUBLIC_DIR", "public")
	setupRoutes(router, handlers, guard, publicDir)

	return router, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HTTP server gracefully shut down")
	}
}
