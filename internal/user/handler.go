package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/auth"
	"github.com/saulo-duarte/medprep-api/internal/config"
)

const sessionDuration = 24 * time.Hour

type Handler struct {
	service Service
	google  *GoogleClient
}

func NewHandler(service Service, google *GoogleClient) *Handler {
	return &Handler{service: service, google: google}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if dto.Email == "" || dto.Password == "" || dto.Name == "" {
		http.Error(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	u, err := h.service.Register(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		log.WithError(err).Error("Failed to register user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.issueSession(w, u)
	config.JSON(w, http.StatusCreated, ToResponse(u))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to login")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.issueSession(w, u)
	config.JSON(w, http.StatusOK, ToResponse(u))
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Code == "" {
		http.Error(w, "authorization code required", http.StatusBadRequest)
		return
	}

	info, refreshToken, err := h.google.Exchange(r.Context(), dto.Code)
	if err != nil {
		log.WithError(err).Error("Failed to exchange Google authorization code")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.service.FindOrCreateFromGoogle(r.Context(), info.ID, info.Email, info.Name, refreshToken)
	if err != nil {
		log.WithError(err).Error("Failed to resolve Google user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.issueSession(w, u)
	config.JSON(w, http.StatusOK, ToResponse(u))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetByID(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to fetch user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, ToResponse(u))
}

func (h *Handler) issueSession(w http.ResponseWriter, u *User) {
	token, err := auth.GenerateJWT(u.ID.String(), u.Role, sessionDuration)
	if err != nil {
		return
	}
	auth.SetSessionCookie(w, token, int(sessionDuration.Seconds()))
}
