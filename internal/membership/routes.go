package membership

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/medprep-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Post("/checkout", h.Checkout)
	return r
}
