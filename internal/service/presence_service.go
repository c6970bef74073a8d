package service

import (
	"sync"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
)

// PresenceService tracks which users are online via heartbeat timestamps.
// Stale records are evicted lazily on the next read.
type PresenceService struct {
	mu      sync.Mutex
	players map[string]models.PresenceRecord
	window  time.Duration
	now     func() time.Time
}

func NewPresenceService(window time.Duration) *PresenceService {
	return &PresenceService{
		players: make(map[string]models.PresenceRecord),
		window:  window,
		now:     time.Now,
	}
}

// Heartbeat upserts the user's last-seen timestamp
func (s *PresenceService) Heartbeat(userID, firstName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[userID] = models.PresenceRecord{
		ID:        userID,
		FirstName: firstName,
		LastSeen:  s.now(),
	}
}

// Remove drops the user from the online set
func (s *PresenceService) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.players, userID)
}

// ListOnline returns users seen within the sliding window, evicting the rest
func (s *PresenceService) ListOnline() []models.PresenceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	online := make([]models.PresenceRecord, 0, len(s.players))
	for userID, player := range s.players {
		if now.Sub(player.LastSeen) > s.window {
			delete(s.players, userID)
			continue
		}
		online = append(online, player)
	}

	return online
}

// Get returns the online record for userID, or nil when offline
func (s *PresenceService) Get(userID string) *models.PresenceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[userID]
	if !ok {
		return nil
	}
	if s.now().Sub(player.LastSeen) > s.window {
		delete(s.players, userID)
		return nil
	}

	return &player
}
