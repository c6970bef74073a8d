package models

import "time"

type ChallengeStatus string

const (
	ChallengeStatusPending  ChallengeStatus = "pending"
	ChallengeStatusAccepted ChallengeStatus = "accepted"
	ChallengeStatusDeclined ChallengeStatus = "declined"
	ChallengeStatusExpired  ChallengeStatus = "expired"
)

// Challenge is a proposed player-vs-player battle. Lives only in process
// memory; collected by the TTL sweep.
type Challenge struct {
	ID             string          `json:"id"`
	ChallengerID   string          `json:"challengerId"`
	ChallengerName string          `json:"challengerName"`
	OpponentID     string          `json:"opponentId"`
	OpponentName   string          `json:"opponentName"`
	Status         ChallengeStatus `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	BattleData     *BattleDisplay  `json:"battleData,omitempty"`
	NotifiedUsers  []string        `json:"notifiedUsers,omitempty"`
}

// Notified reports whether the given participant has seen the acceptance
func (c *Challenge) Notified(userID string) bool {
	for _, id := range c.NotifiedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// Involves reports whether the user is a party to the challenge
func (c *Challenge) Involves(userID string) bool {
	return c.ChallengerID == userID || c.OpponentID == userID
}

// DeclinedChallenge is the challenger-visible decline notice, consumed once
type DeclinedChallenge struct {
	Challenge
	DeclinedBy string    `json:"declinedBy"`
	DeclinedAt time.Time `json:"declinedAt"`
}
