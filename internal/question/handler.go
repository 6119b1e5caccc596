package question

import (
	"net/http"

	"github.com/saulo-duarte/medprep-api/internal/config"
)

type Handler struct {
	repo QuestionRepository
}

func NewHandler(repo QuestionRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	report, err := h.repo.CountBySubjectAndUnit()
	if err != nil {
		log.WithError(err).Error("Failed to count question availability")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, report)
}
