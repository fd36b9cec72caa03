package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/eldar-magrafta/hilan-calculator/internal/handler/http/middleware"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
)

// RouterConfig carries the cross-cutting settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, hoursHandler HoursHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	// Legacy one-shot endpoint, no session
	r.Post("/api/hilan-data", hoursHandler.LegacyFetch)

	r.Route("/api/v1/hours", func(r chi.Router) {
		r.Post("/", hoursHandler.Fetch)

		// Stream authenticates with its own short-lived token
		r.Get("/stream", hoursHandler.Stream)

		// Requires a session token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.SessionRequired(JWTService))

			r.Get("/", hoursHandler.Get)
			r.Delete("/", hoursHandler.End)
			r.Put("/days/{date}", hoursHandler.ClassifyDay)
			r.Get("/export", hoursHandler.Export)
			r.Post("/stream-token", hoursHandler.StreamToken)
		})
	})
	return r
}
