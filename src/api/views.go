package api

import (
	handlers "consolidator/src/api/handlers"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(handler *handlers.Handler) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/holdings", func(r chi.Router) {
		r.Get("/", s.Handler.GetHoldings)
		r.Get("/summary", s.Handler.GetHoldingsSummary)
		r.Get("/export", s.Handler.ExportHoldings)
	})
	s.Router.Get("/api/duplicates", s.Handler.GetRemovedDuplicates)
	s.Router.Post("/api/extractions", s.Handler.CreateExtraction)
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
