package models

import (
	"strings"
	"time"
)

// Play time slots a player can pick on their profile.
const (
	PlayTimeMorning = "morning"
	PlayTimeNoon    = "noon"
	PlayTimeNight   = "night"
)

// DUPR rating bounds enforced on every profile save.
const (
	MinDUPR = 2.0
	MaxDUPR = 5.0
)

var validPlayTimes = map[string]bool{
	PlayTimeMorning: true,
	PlayTimeNoon:    true,
	PlayTimeNight:   true,
}

// PlayerProfile is a player's shareable record, keyed by the identity
// provider's user ID. Email always mirrors the verified identity and is not
// editable through the profile form.
type PlayerProfile struct {
	UserID        string    `json:"user_id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	DUPR          float64   `json:"dupr" bson:"dupr"`
	Phone         string    `json:"phone" bson:"phone"`
	Email         string    `json:"email" bson:"email"`
	PlayTimes     []string  `json:"play_times" bson:"play_times"`
	PlayLocations string    `json:"play_locations" bson:"play_locations"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// PublicPlayerProfile is what a share link resolves to (no phone, no email).
type PublicPlayerProfile struct {
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	DUPR          float64  `json:"dupr"`
	PlayTimes     []string `json:"play_times"`
	PlayLocations string   `json:"play_locations"`
	ShareURL      string   `json:"share_url,omitempty"`
}

// Public returns the share-link-safe projection of the profile.
func (p *PlayerProfile) Public() PublicPlayerProfile {
	return PublicPlayerProfile{
		UserID:        p.UserID,
		Name:          p.Name,
		DUPR:          p.DUPR,
		PlayTimes:     p.PlayTimes,
		PlayLocations: p.PlayLocations,
	}
}

type UpsertPlayerRequest struct {
	Name          string   `json:"name"`
	DUPR          float64  `json:"dupr"`
	Phone         string   `json:"phone"`
	PlayTimes     []string `json:"play_times"`
	PlayLocations string   `json:"play_locations"`
}

func (r *UpsertPlayerRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Name is required"
	}
	if r.DUPR < MinDUPR || r.DUPR > MaxDUPR {
		errors["dupr"] = "DUPR rating must be between 2.0 and 5.0"
	}
	if strings.TrimSpace(r.Phone) == "" {
		errors["phone"] = "Phone is required"
	}
	if strings.TrimSpace(r.PlayLocations) == "" {
		errors["play_locations"] = "Play locations are required"
	}
	for _, t := range r.PlayTimes {
		if !validPlayTimes[t] {
			errors["play_times"] = "Play times must be morning, noon or night"
			break
		}
	}

	return errors
}
