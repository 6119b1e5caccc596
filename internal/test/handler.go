package test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/auth"
	"github.com/saulo-duarte/medprep-api/internal/config"
)

type Handler struct {
	service TestService
}

func NewHandler(service TestService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateTest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreateTestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.CreateTest(r.Context(), uuid.MustParse(claims.UserID), dto)
	if err != nil {
		var shortfall *InsufficientQuestionsError
		switch {
		case errors.As(err, &shortfall):
			config.JSON(w, http.StatusUnprocessableEntity, ShortfallResponse{
				AvailableQuestions: shortfall.AvailableQuestions,
				PassageGroups:      shortfall.PassageGroups,
			})
		case errors.Is(err, ErrInvalidQuestionCount):
			http.Error(w, "question count must be positive", http.StatusBadRequest)
		case errors.Is(err, ErrEntitlementDenied):
			http.Error(w, "membership required", http.StatusForbidden)
		default:
			log.WithError(err).Error("Failed to create test")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusCreated, NewTestResponse(t, time.Now().UTC()))
}

func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tests, err := h.service.ListTests(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		log.WithError(err).Error("Failed to list tests")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, tests)
}

func (h *Handler) GetTest(w http.ResponseWriter, r *http.Request) {
	h.withTest(w, r, h.service.GetTest)
}

func (h *Handler) StartTest(w http.ResponseWriter, r *http.Request) {
	h.withTest(w, r, h.service.StartTest)
}

func (h *Handler) CompleteTest(w http.ResponseWriter, r *http.Request) {
	h.withTest(w, r, h.service.CompleteTest)
}

func (h *Handler) PauseTest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	testID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto PauseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.PauseTest(r.Context(), uuid.MustParse(claims.UserID), testID, dto.RemainingSeconds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, NewTestResponse(t, time.Now().UTC()))
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	questionID, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto AnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tq, err := h.service.RecordAnswer(r.Context(), uuid.MustParse(claims.UserID), questionID, dto.UserAnswer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, tq)
}

// withTest handles the shared shape of the id-scoped operations.
func (h *Handler) withTest(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, testID uuid.UUID) (*Test, error)) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	testID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := op(r.Context(), uuid.MustParse(claims.UserID), testID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, NewTestResponse(t, time.Now().UTC()))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())

	switch {
	case errors.Is(err, ErrTestNotFound):
		http.Error(w, "test not found", http.StatusNotFound)
	case errors.Is(err, ErrQuestionNotFound):
		http.Error(w, "test question not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidState):
		http.Error(w, "operation not allowed in current test state", http.StatusConflict)
	case errors.Is(err, ErrInvalidRemaining):
		http.Error(w, "remaining seconds out of range", http.StatusBadRequest)
	default:
		log.WithError(err).Error("Test operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
