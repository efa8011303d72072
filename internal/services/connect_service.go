package services

import (
	"context"
	"errors"
	"time"

	"github.com/pickleconnect/backend/internal/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSelfConnect      = errors.New("cannot connect with yourself")
	ErrProfileRequired  = errors.New("requester has no player profile")
	ErrTargetNotFound   = errors.New("target player not found")
	ErrInvalidProfile   = errors.New("invalid profile fields")
)

// PlayerStore persists player profiles keyed by identity ID. Get returns
// ErrPlayerNotFound when no profile exists, which callers must treat as a
// recognized state rather than a failure. Put is a full-document replace.
type PlayerStore interface {
	Get(ctx context.Context, userID string) (*models.PlayerProfile, error)
	Put(ctx context.Context, profile *models.PlayerProfile) error
}

// ConnectionStore persists directed connection records. Insert returns
// ErrAlreadyConnected when the ordered (owner, peer) pair already exists.
type ConnectionStore interface {
	Insert(ctx context.Context, conn *models.Connection) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Connection, error)
	Exists(ctx context.Context, ownerID, peerID string) (bool, error)
}

// ConnectService owns the profile/connection workflow rules: profile upsert,
// lookup, connection listing and the connect decision sequence. It holds no
// state between calls; everything lives in the injected stores.
type ConnectService struct {
	players     PlayerStore
	connections ConnectionStore
	now         func() time.Time
}

func NewConnectService(players PlayerStore, connections ConnectionStore) *ConnectService {
	return &ConnectService{
		players:     players,
		connections: connections,
		now:         time.Now,
	}
}

// GetProfile loads the profile stored under id. Absence surfaces as
// ErrPlayerNotFound, distinct from transport errors.
func (s *ConnectService) GetProfile(ctx context.Context, id string) (*models.PlayerProfile, error) {
	return s.players.Get(ctx, id)
}

// UpsertProfile validates req and writes the caller's profile as a full
// replace keyed by their identity ID. Email and user ID always come from the
// verified identity, never from the request body. Saving twice with the same
// fields leaves a single document behind.
func (s *ConnectService) UpsertProfile(ctx context.Context, identity models.Identity, req *models.UpsertPlayerRequest) (*models.PlayerProfile, error) {
	if identity.ID == "" {
		return nil, ErrNotAuthenticated
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, ErrInvalidProfile
	}

	playTimes := req.PlayTimes
	if playTimes == nil {
		playTimes = []string{}
	}

	profile := &models.PlayerProfile{
		UserID:        identity.ID,
		Name:          req.Name,
		DUPR:          req.DUPR,
		Phone:         req.Phone,
		Email:         identity.Email,
		PlayTimes:     playTimes,
		PlayLocations: req.PlayLocations,
		UpdatedAt:     s.now(),
	}

	if err := s.players.Put(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListConnections returns the caller's connection records, newest first.
// No connections is an empty slice, not an error.
func (s *ConnectService) ListConnections(ctx context.Context, identity models.Identity) ([]*models.Connection, error) {
	if identity.ID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.connections.ListByOwner(ctx, identity.ID)
}

// Connect links the requester with the target player. The decision sequence
// is fixed: authentication, self-connect, requester profile, target profile,
// duplicate check, then the paired writes. A duplicate attempt is a terminal
// informational outcome, not an error.
//
// The two inserts are separate writes with no transaction across them; a
// failure after the first leaves a one-sided connection visible only to the
// requester. A retry then reports already_connected.
func (s *ConnectService) Connect(ctx context.Context, requesterID, targetID string) (*models.ConnectResult, error) {
	if requesterID == "" {
		return nil, ErrNotAuthenticated
	}
	if targetID == requesterID {
		return nil, ErrSelfConnect
	}

	requester, err := s.players.Get(ctx, requesterID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, err
	}

	target, err := s.players.Get(ctx, targetID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	exists, err := s.connections.Exists(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &models.ConnectResult{Status: models.StatusAlreadyConnected}, nil
	}

	connectedAt := s.now()

	err = s.connections.Insert(ctx, &models.Connection{
		UserID:          requesterID,
		ConnectedToID:   targetID,
		ConnectedToName: target.Name,
		ConnectedToDUPR: target.DUPR,
		ConnectedAt:     connectedAt,
	})
	if err != nil {
		// A concurrent connect for the same pair beat us to it.
		if errors.Is(err, ErrAlreadyConnected) {
			return &models.ConnectResult{Status: models.StatusAlreadyConnected}, nil
		}
		return nil, err
	}

	err = s.connections.Insert(ctx, &models.Connection{
		UserID:          targetID,
		ConnectedToID:   requesterID,
		ConnectedToName: requester.Name,
		ConnectedToDUPR: requester.DUPR,
		ConnectedAt:     connectedAt,
	})
	if err != nil && !errors.Is(err, ErrAlreadyConnected) {
		return nil, err
	}

	peer := target.Public()
	return &models.ConnectResult{
		Status: models.StatusConnected,
		Peer:   &peer,
	}, nil
}
