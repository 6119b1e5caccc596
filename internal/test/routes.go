package test

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/medprep-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Post("/", h.CreateTest)
	r.Get("/", h.ListTests)
	r.Get("/{id}", h.GetTest)
	r.Post("/{id}/start", h.StartTest)
	r.Post("/{id}/pause", h.PauseTest)
	r.Post("/{id}/complete", h.CompleteTest)
	r.Patch("/questions/{questionID}", h.RecordAnswer)
	return r
}
