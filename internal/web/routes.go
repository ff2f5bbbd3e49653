package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/art-inventory/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	exportHandler := handlers.NewExportHandler(s.assembler)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/catalog/export", exportHandler.Export)
	})
}
