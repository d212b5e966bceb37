package httpx

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/config"
	"backoffice/internal/http/handlers"
	middlewarex "backoffice/internal/http/middleware"
	emailsvc "backoffice/internal/services/email"
	pagesvc "backoffice/internal/services/page"
	usersvc "backoffice/internal/services/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config config.Cfg
	Users  *usersvc.Service
	Pages  *pagesvc.Service
	Emails *emailsvc.Service
	Redis  *redis.Client
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Auth routes (public, IP rate limited)
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middlewarex.RateLimit(deps.Redis, deps.Config.Sec.RateLimitPerMin))

		r.Post("/login", handlers.Login(deps.Users, deps.Config))
		r.Post("/register", handlers.Register(deps.Users))
	})

	// API routes (protected by bearer token)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.JWTAuth(deps.Config.Sec.JWTSecret))
		r.Use(middlewarex.RateLimit(deps.Redis, deps.Config.Sec.RateLimitPerMin))

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", handlers.ListPages(deps.Pages))
			r.Post("/", handlers.CreatePage(deps.Pages))
			r.Get("/{id}", handlers.GetPage(deps.Pages))
			r.Delete("/{id}", handlers.DeletePage(deps.Pages))
		})

		r.Route("/emails", func(r chi.Router) {
			r.Post("/", handlers.CreateEmail(deps.Emails))
			r.Get("/{id}", handlers.GetEmail(deps.Emails))
			r.Put("/{id}", handlers.UpdateEmail(deps.Emails))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", handlers.ListUsers(deps.Users))
			r.Post("/", handlers.CreateUser(deps.Users))
			r.Get("/count", handlers.CountUsers(deps.Users))
			r.Delete("/me/image", handlers.DeleteOwnImage(deps.Users))
			r.Get("/{id}", handlers.GetUser(deps.Users))
			r.Put("/{id}", handlers.UpdateUser(deps.Users))
			r.Delete("/{id}", handlers.DeleteUser(deps.Users))
			r.Post("/{id}/activate", handlers.ActivateUser(deps.Users, true))
			r.Post("/{id}/deactivate", handlers.ActivateUser(deps.Users, false))
			r.Post("/{id}/reset-password", handlers.ResetUserPassword(deps.Users))
		})
	})

	return r
}
