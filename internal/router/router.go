package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appMiddleware "github.com/nepaltrails/trip-planner/app/middleware"
	"github.com/nepaltrails/trip-planner/internal/api/analytics"
	"github.com/nepaltrails/trip-planner/internal/api/attractions"
	"github.com/nepaltrails/trip-planner/internal/api/conversion"
	"github.com/nepaltrails/trip-planner/internal/api/itinerary"
	"github.com/nepaltrails/trip-planner/internal/api/preferences"
	"github.com/nepaltrails/trip-planner/internal/api/recommend"
	"github.com/nepaltrails/trip-planner/internal/api/stats"
)

// Config contains the handlers the router mounts.
type Config struct {
	AttractionsHandler *attractions.Handler
	RecommendHandler   *recommend.Handler
	ItineraryHandler   *itinerary.Handler
	PreferencesHandler *preferences.Handler
	ConversionHandler  *conversion.Handler
	StatsHandler       *stats.Handler
	AnalyticsHandler   *analytics.Handler
	AdminJWTSecret     []byte
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:5000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog and planning routes
		r.Get("/attractions", cfg.AttractionsHandler.List)
		r.Get("/attractions/{id}", cfg.AttractionsHandler.Get)

		r.Get("/recommend/similar/{id}", cfg.RecommendHandler.Similar)
		r.Post("/recommend/preferences", cfg.RecommendHandler.ByPreferences)
		r.Post("/recommend/explain", cfg.RecommendHandler.Explain)

		r.Post("/itinerary/generate", cfg.ItineraryHandler.Generate)

		r.Post("/preferences/save", cfg.PreferencesHandler.Save)
		r.Get("/preferences/load", cfg.PreferencesHandler.Load)

		r.Post("/conversion/request", cfg.ConversionHandler.Request)

		r.Get("/stats", cfg.StatsHandler.Get)
		r.Post("/analytics/track", cfg.AnalyticsHandler.Track)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAdmin(cfg.AdminJWTSecret))
			r.Get("/leads", cfg.ConversionHandler.Leads)
		})
	})

	return r
}
