package services

import (
	"context"
	"errors"
	"sync"

	"github.com/pickleconnect/backend/internal/models"
	"github.com/pickleconnect/backend/internal/storage"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerService is the file-backed PlayerStore used in local mode and tests.
// State lives in memory guarded by a mutex and is flushed through a JSONStore
// after every write.
type PlayerService struct {
	mu      sync.RWMutex
	players map[string]*models.PlayerProfile // userID -> profile
	store   *storage.JSONStore
}

// NewPlayerService loads any previously persisted players. A nil store keeps
// everything in memory only.
func NewPlayerService(store *storage.JSONStore) (*PlayerService, error) {
	s := &PlayerService{
		players: make(map[string]*models.PlayerProfile),
		store:   store,
	}
	if store != nil {
		if err := store.Load(&s.players); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *PlayerService) Get(ctx context.Context, userID string) (*models.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.players[userID]
	if !exists {
		return nil, ErrPlayerNotFound
	}

	copied := *profile
	return &copied, nil
}

// Put replaces the document at profile.UserID entirely. Fields absent from
// profile do not survive from any previous version.
func (s *PlayerService) Put(ctx context.Context, profile *models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *profile
	s.players[profile.UserID] = &copied

	if s.store != nil {
		return s.store.Save(s.players)
	}
	return nil
}
