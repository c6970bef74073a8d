package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/internal/repository"
)

const (
	// Users with fewer total battles than this are not ranked
	leaderboardMinBattles = 5
	// Number of most recent battles considered per user
	leaderboardWindow = 10

	pointsPerWin  = 3
	pointsPerDraw = 1
)

// LeaderboardService derives rankings from every user's persisted battle
// history. It reads the same store the arena writes through, independently.
type LeaderboardService struct {
	userRepo   *repository.UserRepository
	battleRepo *repository.BattleRepository
}

func NewLeaderboardService(userRepo *repository.UserRepository, battleRepo *repository.BattleRepository) *LeaderboardService {
	return &LeaderboardService{
		userRepo:   userRepo,
		battleRepo: battleRepo,
	}
}

// Standings ranks all eligible users by points, win rate breaking ties.
// The row belonging to currentUserID is marked.
func (s *LeaderboardService) Standings(currentUserID string) ([]models.LeaderboardRow, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	rows := []models.LeaderboardRow{}
	for _, user := range users {
		battles, err := s.battleRepo.LoadAll(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load battles for %s: %w", user.ID, err)
		}

		if len(battles) < leaderboardMinBattles {
			continue
		}

		recent, err := s.battleRepo.LoadRecent(user.ID, leaderboardWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to load recent battles for %s: %w", user.ID, err)
		}
		if len(recent) == 0 {
			continue
		}

		wins := 0
		draws := 0
		totalScore := 0.0
		for _, battle := range recent {
			if battle.Details == nil {
				continue
			}
			totalScore += battle.Details.MyPokemon.Score

			switch battle.Details.Result {
			case models.ResultWon:
				wins++
			case models.ResultTie:
				draws++
			}
		}

		considered := len(recent)
		winRate := int(math.Round(float64(wins) / float64(considered) * 100))

		rows = append(rows, models.LeaderboardRow{
			UserID:        user.ID,
			Username:      user.FirstName,
			TotalBattles:  considered,
			Wins:          wins,
			WinRate:       winRate,
			TotalScore:    totalScore,
			Points:        wins*pointsPerWin + draws*pointsPerDraw,
			IsCurrentUser: user.ID == currentUserID,
		})
	}

	// Points descending, win rate breaking ties
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].WinRate > rows[j].WinRate
	})

	return rows, nil
}
