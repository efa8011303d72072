package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pickleconnect/backend/internal/middleware"
	"github.com/pickleconnect/backend/internal/models"
	"github.com/pickleconnect/backend/internal/services"
)

type ProfileHandler struct {
	service *services.ConnectService
	baseURL string
}

func NewProfileHandler(service *services.ConnectService, baseURL string) *ProfileHandler {
	return &ProfileHandler{service: service, baseURL: baseURL}
}

// GetProfile returns the caller's own profile. A player who has not finished
// onboarding gets a 404, which the client treats as "show the create form",
// not as a failure.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	profile, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity.ID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpsertPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	profile, err := h.service.UpsertProfile(ctx, identity, &req)
	if err != nil {
		log.Printf("[UpsertProfile] user=%s error=%v", identity.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}
