package membership

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/auth"
	"github.com/saulo-duarte/medprep-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) MembershipStatus(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	status, err := h.service.Status(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to resolve membership status")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, status)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID := uuid.MustParse(claims.UserID)
	if err := h.service.Purchase(r.Context(), userID, string(dto.Plan), dto.PaymentCredential); err != nil {
		switch {
		case errors.Is(err, ErrInvalidPlan):
			http.Error(w, "invalid plan", http.StatusBadRequest)
		case errors.Is(err, ErrPayment):
			log.WithError(err).Warn("Checkout refused by payment processor")
			http.Error(w, "payment failed", http.StatusPaymentRequired)
		default:
			log.WithError(err).Error("Failed to process checkout")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to reload membership status")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, status)
}

// Webhook receives the asynchronous event feed from the payment
// processor. Duplicate deliveries are tolerated.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var evt BillingEventDTO
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ApplyEvent(r.Context(), evt); err != nil {
		switch {
		case errors.Is(err, ErrInvalidEvent):
			http.Error(w, "invalid billing event", http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to apply billing event")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "event applied"})
}
