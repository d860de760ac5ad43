package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/micropost/micropost-go/internal/config"
	"github.com/micropost/micropost-go/internal/handlers"
	"github.com/micropost/micropost-go/internal/middleware"
	"github.com/micropost/micropost-go/internal/repo"
)

// newRouter builds the full API handler chain. It takes the shared DB pool
// and config so tests can construct the exact production router around a
// mock store.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)

	secret := []byte(cfg.JWTSecret)
	authHandler := &handlers.AuthHandler{
		Users:    userRepo,
		Secret:   secret,
		TokenTTL: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	postHandler := &handlers.PostHandler{Posts: postRepo}
	userHandler := &handlers.UserHandler{Users: userRepo, Posts: postRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.TokenHeader},
		MaxAge:         86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ready")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/posts", postHandler.ListPosts)
		r.Get("/users/{userID}", userHandler.GetUser)
		r.Get("/users/{userID}/posts", userHandler.ListUserPosts)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(secret))
			r.Get("/auth/me", authHandler.Me)
			r.Post("/posts", postHandler.CreatePost)
		})
	})

	return r
}
