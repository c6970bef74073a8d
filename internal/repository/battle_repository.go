package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/pkg/storage"
)

const battlesFile = "battles.json"

// BattleRepository is the append-only per-user battle log in
// <dataDir>/<userId>/battles.json. The daily quota derives from it.
type BattleRepository struct {
	mu         sync.Mutex
	storage    *storage.Storage
	dailyLimit int
}

func NewBattleRepository(storage *storage.Storage, dailyLimit int) *BattleRepository {
	return &BattleRepository{
		storage:    storage,
		dailyLimit: dailyLimit,
	}
}

// Append records a battle entry; entries are never mutated or deleted
func (r *BattleRepository) Append(userID string, entry models.BattleHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := r.loadLocked(userID)
	if err != nil {
		return err
	}

	log.Battles = append(log.Battles, entry)

	if err := r.storage.EnsureUserDir(userID); err != nil {
		return err
	}
	if err := r.storage.WriteJSON(r.storage.UserFile(userID, battlesFile), log); err != nil {
		return fmt.Errorf("failed to save battles: %w", err)
	}

	return nil
}

// LoadAll returns the user's full battle history in recorded order
func (r *BattleRepository) LoadAll(userID string) ([]models.BattleHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := r.loadLocked(userID)
	if err != nil {
		return nil, err
	}

	return log.Battles, nil
}

// LoadRecent returns up to limit entries, most recent first
func (r *BattleRepository) LoadRecent(userID string, limit int) ([]models.BattleHistoryEntry, error) {
	battles, err := r.LoadAll(userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(battles, func(i, j int) bool {
		return battles[i].Timestamp.After(battles[j].Timestamp)
	})

	if len(battles) > limit {
		battles = battles[:limit]
	}

	return battles, nil
}

// CountToday counts entries whose timestamp falls on the current calendar day
func (r *BattleRepository) CountToday(userID string) (int, error) {
	battles, err := r.LoadAll(userID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	count := 0
	for _, battle := range battles {
		ts := battle.Timestamp
		if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
			count++
		}
	}

	return count, nil
}

// HasQuotaRemaining reports whether the user may enter another battle today
func (r *BattleRepository) HasQuotaRemaining(userID string) (bool, error) {
	count, err := r.CountToday(userID)
	if err != nil {
		return false, err
	}
	return count < r.dailyLimit, nil
}

// DailyLimit returns the configured daily battle cap
func (r *BattleRepository) DailyLimit() int {
	return r.dailyLimit
}

func (r *BattleRepository) loadLocked(userID string) (*models.BattleLog, error) {
	path := r.storage.UserFile(userID, battlesFile)
	if !r.storage.Exists(path) {
		return &models.BattleLog{Battles: []models.BattleHistoryEntry{}}, nil
	}

	log := &models.BattleLog{}
	if err := r.storage.ReadJSON(path, log); err != nil {
		return nil, fmt.Errorf("failed to load battles: %w", err)
	}

	return log, nil
}
