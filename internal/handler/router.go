package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/passgen/internal/middleware"
)

// Routes wires handlers and their middleware.
type Routes struct {
	Generator   *GeneratorHandler
	Popup       *PopupHandler
	PopupSecret string
	Limiter     *middleware.IPRateLimiter
}

// NewRouter builds the HTTP API.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/generate", rt.Generator.HandleGenerate)

	// Argon2 verification and token minting are the expensive paths.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.Limiter))
		r.Post("/api/v1/verify", rt.Generator.HandleVerify)
		r.Post("/api/v1/popup", rt.Popup.HandleOpen)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.PopupAuth(rt.PopupSecret))
		r.Post("/api/v1/popup/generate", rt.Popup.HandleRegenerate)
	})

	return r
}
