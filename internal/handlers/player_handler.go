package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pickleconnect/backend/internal/models"
	"github.com/pickleconnect/backend/internal/services"
)

// PlayerHandler serves the public share-link surface: anyone holding
// <base>/player/<id> (from an NFC tag or QR scan) can view that player's
// public profile without signing in.
type PlayerHandler struct {
	service *services.ConnectService
	qr      *services.QRService
	baseURL string
}

func NewPlayerHandler(service *services.ConnectService, qr *services.QRService, baseURL string) *PlayerHandler {
	return &PlayerHandler{service: service, qr: qr, baseURL: baseURL}
}

func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	if playerID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing playerId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	profile, err := h.service.GetProfile(ctx, playerID)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Player not found"))
			return
		}
		log.Printf("[GetPlayer] player=%s error=%v", playerID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load player"))
		return
	}

	pub := profile.Public()
	pub.ShareURL = shareURL(h.baseURL, profile.UserID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pub))
}

// GetPlayerQR renders the player's share link as a PNG. Encoding failures are
// cosmetic: log and answer 404 so the client simply skips the QR section.
func (h *PlayerHandler) GetPlayerQR(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	if playerID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing playerId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if _, err := h.service.GetProfile(ctx, playerID); err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Player not found"))
			return
		}
		log.Printf("[GetPlayerQR] player=%s error=%v", playerID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load player"))
		return
	}

	png, err := h.qr.Encode(shareURL(h.baseURL, playerID))
	if err != nil {
		log.Printf("[GetPlayerQR] player=%s encode error=%v", playerID, err)
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("QR code unavailable"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
