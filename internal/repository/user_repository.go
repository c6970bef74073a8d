package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/pkg/storage"
)

const usersFile = "users.json"

// UserRepository persists the user directory in a single users.json at the
// data-directory root. Registration also provisions the per-user directory
// with empty favorites and battles files.
type UserRepository struct {
	mu      sync.Mutex
	storage *storage.Storage
}

func NewUserRepository(storage *storage.Storage) *UserRepository {
	return &UserRepository{storage: storage}
}

// Create creates a new user and provisions its data directory
func (r *UserRepository) Create(firstName, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	users = append(users, user.ToStored())
	if err := r.storage.WriteJSON(r.storage.RootFile(usersFile), users); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}

	if err := r.storage.EnsureUserDir(user.ID); err != nil {
		return nil, err
	}
	if err := r.storage.WriteJSON(r.storage.UserFile(user.ID, favoritesFile), []models.Favorite{}); err != nil {
		return nil, fmt.Errorf("failed to init favorites: %w", err)
	}
	if err := r.storage.WriteJSON(r.storage.UserFile(user.ID, battlesFile), models.BattleLog{Battles: []models.BattleHistoryEntry{}}); err != nil {
		return nil, fmt.Errorf("failed to init battles: %w", err)
	}

	return user, nil
}

// FindByEmail returns nil, nil when no user matches
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	for _, stored := range users {
		if stored.Email == email {
			return stored.ToUser(), nil
		}
	}

	return nil, nil
}

// FindByID returns nil, nil when no user matches
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	for _, stored := range users {
		if stored.ID == id {
			return stored.ToUser(), nil
		}
	}

	return nil, nil
}

// ListAll returns every registered user
func (r *UserRepository) ListAll() ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(stored))
	for _, s := range stored {
		users = append(users, s.ToUser())
	}

	return users, nil
}

func (r *UserRepository) loadLocked() ([]models.StoredUser, error) {
	path := r.storage.RootFile(usersFile)
	if !r.storage.Exists(path) {
		return []models.StoredUser{}, nil
	}

	var users []models.StoredUser
	if err := r.storage.ReadJSON(path, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	return users, nil
}
