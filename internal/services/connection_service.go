package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pickleconnect/backend/internal/models"
	"github.com/pickleconnect/backend/internal/storage"
)

var ErrAlreadyConnected = errors.New("players already connected")

// ConnectionService is the file-backed ConnectionStore used in local mode and
// tests. The byOwner index mirrors the unique (user_id, connected_to_id)
// constraint the Mongo implementation gets from its compound index.
type ConnectionService struct {
	mu          sync.RWMutex
	connections map[string]*models.Connection // connectionID -> connection
	byOwner     map[string]map[string]string  // ownerID -> peerID -> connectionID
	store       *storage.JSONStore
}

func NewConnectionService(store *storage.JSONStore) (*ConnectionService, error) {
	s := &ConnectionService{
		connections: make(map[string]*models.Connection),
		byOwner:     make(map[string]map[string]string),
		store:       store,
	}
	if store != nil {
		if err := store.Load(&s.connections); err != nil {
			return nil, err
		}
		for id, conn := range s.connections {
			s.index(conn.UserID, conn.ConnectedToID, id)
		}
	}
	return s, nil
}

func (s *ConnectionService) index(ownerID, peerID, connID string) {
	if s.byOwner[ownerID] == nil {
		s.byOwner[ownerID] = make(map[string]string)
	}
	s.byOwner[ownerID][peerID] = connID
}

func (s *ConnectionService) Insert(ctx context.Context, conn *models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if peers, exists := s.byOwner[conn.UserID]; exists {
		if _, exists := peers[conn.ConnectedToID]; exists {
			return ErrAlreadyConnected
		}
	}

	copied := *conn
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}

	s.connections[copied.ID] = &copied
	s.index(copied.UserID, copied.ConnectedToID, copied.ID)

	if s.store != nil {
		return s.store.Save(s.connections)
	}
	return nil
}

func (s *ConnectionService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Connection, 0)
	for _, connID := range s.byOwner[ownerID] {
		if conn, exists := s.connections[connID]; exists {
			copied := *conn
			out = append(out, &copied)
		}
	}

	// Newest first for display.
	sort.Slice(out, func(i, j int) bool {
		return out[i].ConnectedAt.After(out[j].ConnectedAt)
	})
	return out, nil
}

func (s *ConnectionService) Exists(ctx context.Context, ownerID, peerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	peers, exists := s.byOwner[ownerID]
	if !exists {
		return false, nil
	}
	_, exists = peers[peerID]
	return exists, nil
}
