package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// startServer builds the router and serves the browser chart plus the JSON
// API. It is wired into cmd.StartServer by main.
func startServer(port int) error {
	db, err := NewStatsDB()
	if err != nil {
		return fmt.Errorf("failed to open stats store: %w", err)
	}
	defer db.Close()

	r := newRouter(db)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting server on http://localhost%s", addr)
	return http.ListenAndServe(addr, r)
}

// newRouter wires the web and API handlers. Split out so tests can drive
// the routes without binding a port.
func newRouter(db *StatsDB) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Web handlers (ECharts HTML responses)
	webHandler := &WebHandler{}
	r.Get("/", webHandler.ChartPage)

	// API handlers (JSON responses)
	apiHandler := &APIHandler{DB: db}
	r.Route("/api", func(r chi.Router) {
		r.Get("/records", apiHandler.Records)
		r.Get("/metrics", apiHandler.Metrics)
		r.Get("/domains", apiHandler.Domains)
		r.Get("/summary", apiHandler.Summary)
		r.Get("/years/{year}", apiHandler.Year)
	})

	return r
}
