/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/today, /api/convert/*   Date conversion
  /api/resolve                 Field-map resolution
  /api/years, /api/calendar/*  Calendar rendering
  /api/span                    Date distances
  /api/events/*                Agenda events
  /api/holidays/*              Holiday management
  /api/scenarios/*             Demo scenarios
  /api/reset                   Database reset (dev only)
  /*                           Landing page listing the API

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Conversion routes
		r.Get("/today", h.Today)
		r.Route("/convert", func(r chi.Router) {
			r.Get("/to-jalali", h.ToJalali)
			r.Get("/to-gregorian", h.ToGregorian)
		})
		r.Post("/resolve", h.Resolve)

		// Calendar routes
		r.Get("/years/{year}", h.GetYear)
		r.Get("/calendar/{year}/{month}", h.GetMonth)
		r.Post("/span", h.Span)

		// Event routes
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{id}", h.GetEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/{year}", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.AddDefaultHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})

		// Reset (dev only)
		r.Post("/reset", h.ResetDatabase)
	})

	// Landing page: there is no frontend, just point at the API
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Jalali Calendar Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Jalali Calendar Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/today">/api/today</a> - Today as a Jalali date</li>
<li><a href="/api/convert/to-jalali?date=2026-08-26">/api/convert/to-jalali</a> - Gregorian to Jalali</li>
<li><a href="/api/calendar/1405/6">/api/calendar/{year}/{month}</a> - Month grid</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
