// Package server serves the pose recommendation endpoint and the browser chat page.
package server

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/diogo/posechat/internal/models"
	"github.com/diogo/posechat/internal/recommend"
)

//go:embed assets
var assets embed.FS

var templates = template.Must(template.ParseFS(assets, "assets/*.html"))

// Recommender turns user input into pose recommendations.
type Recommender interface {
	Recommend(input string) []recommend.Result
}

// Server holds the handlers' dependencies.
type Server struct {
	recommender Recommender
	logger      *slog.Logger
}

// New wires the routes and middleware around r.
func New(r Recommender, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{recommender: r, logger: logger}

	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(err)
	}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(middleware.RealIP)
	router.Use(accessLog(logger))
	router.Use(middleware.Recoverer)

	router.Get(models.EndpointIndex, s.handleIndex)
	router.Handle(models.EndpointStatic+"/*",
		http.StripPrefix(models.EndpointStatic+"/", http.FileServer(http.FS(static))))
	router.Post(models.EndpointResponse, s.handleResponse)

	return router
}
