package service

import (
	"errors"
	"strings"
)

// Common service errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// User service specific errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Scoring engine specific errors
var (
	ErrMalformedPokemonData = errors.New("pokemon snapshot is missing base stats")
)

// Arena specific errors
var (
	ErrInvalidChallenge   = errors.New("invalid challenge")
	ErrChallengeExpired   = errors.New("challenge is no longer pending")
	ErrDuplicateChallenge = errors.New("a pending challenge already exists between these players")
	ErrBattleNotFound     = errors.New("battle data not found")
	ErrUpstreamFetch      = errors.New("failed to fetch pokemon data")
)

// ValidationErrors is the ordered, itemized list of violated preconditions.
// Callers surface First(); nothing is swallowed.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// First returns the most relevant violation for user display
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}
