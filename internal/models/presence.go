package models

import "time"

// PresenceRecord marks a user as online while their last heartbeat falls
// inside the sliding presence window
type PresenceRecord struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastSeen  time.Time `json:"lastSeen"`
}
