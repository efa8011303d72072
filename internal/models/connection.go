package models

import (
	"time"
)

// Connection is a directed link from one player to another. Connections are
// always written in pairs (one record per direction) and carry a snapshot of
// the peer's name and rating taken at connect time; the snapshot is not
// updated when the peer later edits their profile.
type Connection struct {
	ID              string    `json:"id" bson:"_id"`
	UserID          string    `json:"user_id" bson:"user_id"`
	ConnectedToID   string    `json:"connected_to_id" bson:"connected_to_id"`
	ConnectedToName string    `json:"connected_to_name" bson:"connected_to_name"`
	ConnectedToDUPR float64   `json:"connected_to_dupr" bson:"connected_to_dupr"`
	ConnectedAt     time.Time `json:"connected_at" bson:"connected_at"`
}

type ConnectRequest struct {
	PlayerID string `json:"player_id"`
}

// Connect outcome statuses. AlreadyConnected is informational, not a failure.
const (
	StatusConnected        = "connected"
	StatusAlreadyConnected = "already_connected"
)

type ConnectResult struct {
	Status string               `json:"status"`
	Peer   *PublicPlayerProfile `json:"peer,omitempty"`
}
