package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/pkg/storage"
)

const favoritesFile = "favorites.json"

var (
	ErrDuplicateFavorite = errors.New("pokemon is already in favorites")
	ErrFavoriteLimit     = errors.New("favorites limit reached")
	ErrFavoriteNotFound  = errors.New("pokemon is not in favorites")
)

// FavoriteRepository persists each user's favorites list in
// <dataDir>/<userId>/favorites.json. The list is capped and unique by
// pokemon id; a rejected add never touches the stored list.
type FavoriteRepository struct {
	mu           sync.Mutex
	storage      *storage.Storage
	maxFavorites int
}

func NewFavoriteRepository(storage *storage.Storage, maxFavorites int) *FavoriteRepository {
	return &FavoriteRepository{
		storage:      storage,
		maxFavorites: maxFavorites,
	}
}

// Limit returns the maximum favorites per user
func (r *FavoriteRepository) Limit() int {
	return r.maxFavorites
}

// List returns the user's favorites, empty when none exist yet
func (r *FavoriteRepository) List(userID string) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadLocked(userID)
}

// Add appends a pokemon to the user's favorites
func (r *FavoriteRepository) Add(userID string, pokemonID int) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favorites, err := r.loadLocked(userID)
	if err != nil {
		return nil, err
	}

	for _, fav := range favorites {
		if fav.PokemonID == pokemonID {
			return nil, ErrDuplicateFavorite
		}
	}

	if len(favorites) >= r.maxFavorites {
		return nil, ErrFavoriteLimit
	}

	favorites = append(favorites, models.Favorite{
		PokemonID: pokemonID,
		AddedAt:   time.Now(),
	})

	if err := r.saveLocked(userID, favorites); err != nil {
		return nil, err
	}

	return favorites, nil
}

// Remove deletes a pokemon from the user's favorites
func (r *FavoriteRepository) Remove(userID string, pokemonID int) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favorites, err := r.loadLocked(userID)
	if err != nil {
		return nil, err
	}

	kept := favorites[:0]
	found := false
	for _, fav := range favorites {
		if fav.PokemonID == pokemonID {
			found = true
			continue
		}
		kept = append(kept, fav)
	}

	if !found {
		return nil, ErrFavoriteNotFound
	}

	if err := r.saveLocked(userID, kept); err != nil {
		return nil, err
	}

	return kept, nil
}

func (r *FavoriteRepository) loadLocked(userID string) ([]models.Favorite, error) {
	path := r.storage.UserFile(userID, favoritesFile)
	if !r.storage.Exists(path) {
		return []models.Favorite{}, nil
	}

	var favorites []models.Favorite
	if err := r.storage.ReadJSON(path, &favorites); err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	return favorites, nil
}

func (r *FavoriteRepository) saveLocked(userID string, favorites []models.Favorite) error {
	if err := r.storage.EnsureUserDir(userID); err != nil {
		return err
	}
	if err := r.storage.WriteJSON(r.storage.UserFile(userID, favoritesFile), favorites); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
