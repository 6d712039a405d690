package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grclab/riskscope/pkg/usecase"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/risk-settings", func(r chi.Router) {
		r.Get("/", s.getSettings)
		r.Put("/", s.updateSettings)
		r.Post("/reset", s.resetSettings)
		r.Get("/risk-level", s.classifyScore)
		r.Get("/check-appetite", s.checkAppetite)
		r.Get("/likelihood-scale", s.likelihoodScale)
		r.Get("/impact-scale", s.impactScale)
	})

	r.Route("/api/risks", func(r chi.Router) {
		// Analysis routes must be registered before the {riskID}
		// wildcard or chi would swallow them.
		r.Route("/analysis", func(r chi.Router) {
			r.Post("/compare", s.compareRisks)
			r.Post("/what-if", s.simulateWhatIf)
			r.Post("/what-if/batch", s.batchWhatIf)
			r.Post("/reports", s.generateReport)
			r.Get("/reports/fields", s.listReportFields)
		})

		r.Post("/", s.createRisk)
		r.Get("/", s.listRisks)
		r.Route("/{riskID}", func(r chi.Router) {
			r.Get("/", s.getRisk)
			r.Put("/", s.updateRisk)
			r.Delete("/", s.deleteRisk)
			r.Post("/assessments", s.recordAssessment)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
