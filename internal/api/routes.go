package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes configura e retorna o roteador Chi
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	// Content-Disposition precisa ser exposto para o cliente ler o nome
	// do arquivo no download
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Tempo de cache da preflight
	}))

	r.Route("/api", func(r chi.Router) {
		// Endpoints públicos (sem autenticação)
		r.Get("/health", h.handleHealth)
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)

		// Endpoints protegidos (requerem autenticação)
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Post("/upload", h.handleUpload)
			r.Get("/documents", h.handleListDocuments)
			r.Get("/download/{id}", h.handleDownload)
			r.Delete("/document/{id}", h.handleDeleteDocument)
		})
	})

	return r
}
