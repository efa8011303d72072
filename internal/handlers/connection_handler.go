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

type ConnectionHandler struct {
	service *services.ConnectService
}

func NewConnectionHandler(service *services.ConnectService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

func (h *ConnectionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity.ID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	connections, err := h.service.ListConnections(ctx, identity)
	if err != nil {
		log.Printf("[ListConnections] user=%s error=%v", identity.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list connections"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(connections))
}

// Connect records a mutual connection between the caller and the player in
// the request body. Precondition failures map to client errors the UI routes
// on (sign-in, onboarding); already_connected comes back as a plain 200.
func (h *ConnectionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing player_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	result, err := h.service.Connect(ctx, userID, req.PlayerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		case errors.Is(err, services.ErrSelfConnect):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("You cannot connect with yourself"))
		case errors.Is(err, services.ErrProfileRequired):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Create your profile before connecting"))
		case errors.Is(err, services.ErrTargetNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Player not found"))
		default:
			log.Printf("[Connect] user=%s target=%s error=%v", userID, req.PlayerID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to connect"))
		}
		return
	}

	if result.Status == models.StatusAlreadyConnected {
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(result))
}
