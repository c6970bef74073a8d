package models

// LeaderboardRow is one ranked user on the leaderboard
type LeaderboardRow struct {
	UserID        string  `json:"userId"`
	Username      string  `json:"username"`
	TotalBattles  int     `json:"totalBattles"`
	Wins          int     `json:"wins"`
	WinRate       int     `json:"winRate"`
	TotalScore    float64 `json:"totalScore"`
	Points        int     `json:"points"`
	IsCurrentUser bool    `json:"isCurrentUser"`
}
