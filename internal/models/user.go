package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // hidden from JSON responses
	CreatedAt    time.Time `json:"createdAt"`
}

// StoredUser is the on-disk shape; the hash must survive the round trip
// that the API-facing struct deliberately drops.
type StoredUser struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToStored converts to the persistable shape
func (u *User) ToStored() StoredUser {
	return StoredUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// ToUser converts back from the persistable shape
func (s StoredUser) ToUser() *User {
	return &User{
		ID:           s.ID,
		FirstName:    s.FirstName,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		CreatedAt:    s.CreatedAt,
	}
}

// HashPassword hashes a plaintext password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
