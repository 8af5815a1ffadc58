package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type serverOptions struct {
	CORSOrigins []string
	StaticDir   string
}

type server struct {
	router chi.Router
	book   *songbook
}

func newServer(book *songbook, opts serverOptions) *server {
	s := &server{
		book: book,
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.renderError(w, r, notFoundError("Not found"), "")
		})

		r.Get("/health", s.getHealth)

		r.Route("/songs", func(r chi.Router) {
			r.Get("/", s.getSongs)
			r.Post("/", s.postSong)
			r.Post("/bulk-delete", s.postBulkDeleteSongs)
			r.Get("/{id}", s.getSong)
			r.Put("/{id}", s.putSong)
			r.Delete("/{id}", s.deleteSong)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.getTags)
			r.Post("/", s.postTag)
			r.Delete("/{id}", s.deleteTag)
		})

		r.Post("/ocr", s.postOCR)
	})

	if opts.StaticDir != "" {
		r.Handle("/*", spaHandler(opts.StaticDir))
	}

	s.router = r
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) getHealth(w http.ResponseWriter, r *http.Request) {
	store := "configured"
	if !s.book.configured() {
		store = "not configured"
	}

	s.renderJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  store,
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
