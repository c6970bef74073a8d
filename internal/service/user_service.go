package service

import (
	"fmt"
	"strings"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user after validating the registration form
func (s *UserService) Register(firstName, email, password string) (*models.User, error) {
	if violations := validateRegistration(firstName, email, password); len(violations) > 0 {
		return nil, violations
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(strings.TrimSpace(firstName), email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates by email and password
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID looks a user up by id
func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func validateRegistration(firstName, email, password string) ValidationErrors {
	var violations ValidationErrors

	if len(strings.TrimSpace(firstName)) < 2 {
		violations = append(violations, "First name must be at least 2 characters long")
	}
	if !strings.Contains(email, "@") {
		violations = append(violations, "Please enter a valid email address")
	}
	if len(password) < 6 {
		violations = append(violations, "Password must be at least 6 characters long")
	}

	return violations
}
