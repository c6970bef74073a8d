package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/internal/repository"
	"github.com/irad15/PokemonProject/pkg/storage"
)

func newLeaderboardEnv(t *testing.T) (*LeaderboardService, *repository.UserRepository, *repository.BattleRepository) {
	t.Helper()

	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	userRepo := repository.NewUserRepository(store)
	battleRepo := repository.NewBattleRepository(store, 5)

	return NewLeaderboardService(userRepo, battleRepo), userRepo, battleRepo
}

func appendBattles(t *testing.T, battleRepo *repository.BattleRepository, userID string, base time.Time, results ...models.BattleResult) {
	t.Helper()

	for i, result := range results {
		entry := models.BattleHistoryEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Type:      models.BattleTypeBot,
			Opponent:  "Bot",
			Details: &models.BattleStorage{
				MyPokemon:       models.BattleRecord{Name: fmt.Sprintf("pokemon-%d", i), Score: 60},
				OpponentPokemon: models.BattleRecord{Name: "opponent", Score: 55},
				Result:          result,
			},
		}
		if err := battleRepo.Append(userID, entry); err != nil {
			t.Fatalf("Failed to append battle: %v", err)
		}
	}
}

func TestLeaderboardService_MinimumBattles(t *testing.T) {
	leaderboard, userRepo, battleRepo := newLeaderboardEnv(t)

	rookie, err := userRepo.Create("Rookie", "rookie@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	veteran, err := userRepo.Create("Veteran", "veteran@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	appendBattles(t, battleRepo, rookie.ID, base,
		models.ResultWon, models.ResultWon, models.ResultWon, models.ResultWon)
	appendBattles(t, battleRepo, veteran.ID, base,
		models.ResultWon, models.ResultWon, models.ResultWon, models.ResultWon, models.ResultWon)

	rows, err := leaderboard.Standings(rookie.ID)
	if err != nil {
		t.Fatalf("Standings returned error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Standings returned %d rows, want 1", len(rows))
	}
	if rows[0].UserID != veteran.ID {
		t.Errorf("Ranked user = %s, want %s", rows[0].UserID, veteran.ID)
	}
}

func TestLeaderboardService_Ordering(t *testing.T) {
	leaderboard, userRepo, battleRepo := newLeaderboardEnv(t)

	champion, err := userRepo.Create("Champion", "champion@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	contender, err := userRepo.Create("Contender", "contender@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	drawer, err := userRepo.Create("Drawer", "drawer@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	// 5 wins: 15 points, 100% win rate
	appendBattles(t, battleRepo, champion.ID, base,
		models.ResultWon, models.ResultWon, models.ResultWon, models.ResultWon, models.ResultWon)
	// 3 wins, 2 losses: 9 points, 60% win rate
	appendBattles(t, battleRepo, contender.ID, base,
		models.ResultWon, models.ResultWon, models.ResultWon, models.ResultLost, models.ResultLost)
	// 5 draws: 5 points, 0% win rate
	appendBattles(t, battleRepo, drawer.ID, base,
		models.ResultTie, models.ResultTie, models.ResultTie, models.ResultTie, models.ResultTie)

	rows, err := leaderboard.Standings(contender.ID)
	if err != nil {
		t.Fatalf("Standings returned error: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Standings returned %d rows, want 3", len(rows))
	}

	expectedOrder := []string{champion.ID, contender.ID, drawer.ID}
	for i, userID := range expectedOrder {
		if rows[i].UserID != userID {
			t.Errorf("Rank %d = %s, want %s", i+1, rows[i].UserID, userID)
		}
	}

	if rows[0].Points != 15 || rows[0].WinRate != 100 {
		t.Errorf("Champion row = %+v", rows[0])
	}
	if rows[1].Points != 9 || rows[1].WinRate != 60 {
		t.Errorf("Contender row = %+v", rows[1])
	}
	if rows[2].Points != 5 || rows[2].WinRate != 0 {
		t.Errorf("Drawer row = %+v", rows[2])
	}

	if !rows[1].IsCurrentUser {
		t.Error("Current user row not marked")
	}
	if rows[0].IsCurrentUser || rows[2].IsCurrentUser {
		t.Error("Wrong row marked as current user")
	}
}

func TestLeaderboardService_RecentWindow(t *testing.T) {
	leaderboard, userRepo, battleRepo := newLeaderboardEnv(t)

	user, err := userRepo.Create("Slumping", "slumping@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// Two old wins, then ten recent losses. Only the window counts.
	old := time.Now().Add(-48 * time.Hour)
	appendBattles(t, battleRepo, user.ID, old, models.ResultWon, models.ResultWon)

	recent := time.Now().Add(-time.Hour)
	appendBattles(t, battleRepo, user.ID, recent,
		models.ResultLost, models.ResultLost, models.ResultLost, models.ResultLost, models.ResultLost,
		models.ResultLost, models.ResultLost, models.ResultLost, models.ResultLost, models.ResultLost)

	rows, err := leaderboard.Standings(user.ID)
	if err != nil {
		t.Fatalf("Standings returned error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Standings returned %d rows, want 1", len(rows))
	}
	if rows[0].Wins != 0 {
		t.Errorf("Wins = %d, want 0; the old wins fall outside the window", rows[0].Wins)
	}
	if rows[0].TotalBattles != 10 {
		t.Errorf("TotalBattles = %d, want 10", rows[0].TotalBattles)
	}
	if rows[0].Points != 0 {
		t.Errorf("Points = %d, want 0", rows[0].Points)
	}
}
