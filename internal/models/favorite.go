package models

import "time"

// Favorite is one entry of a user's favorites list (cap 10, unique by id)
type Favorite struct {
	PokemonID int       `json:"id"`
	AddedAt   time.Time `json:"addedAt"`
}
