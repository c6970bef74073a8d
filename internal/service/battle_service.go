package service

import (
	"fmt"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/internal/repository"
)

// BattleService builds battle records and writes them through the battle
// history store.
type BattleService struct {
	scoreService *ScoreService
	battleRepo   *repository.BattleRepository
}

func NewBattleService(scoreService *ScoreService, battleRepo *repository.BattleRepository) *BattleService {
	return &BattleService{
		scoreService: scoreService,
		battleRepo:   battleRepo,
	}
}

// BuildBattle scores both sides once and produces the display and storage
// representations. The result field is computed a single time and shared by
// both, so they can never disagree.
func (s *BattleService) BuildBattle(p1, p2 *models.Pokemon, name1, name2, id1, id2 string) (*models.BattleData, error) {
	score1, err := s.scoreService.Score(p1, p2)
	if err != nil {
		return nil, fmt.Errorf("failed to score %s: %w", name1, err)
	}

	score2, err := s.scoreService.Score(p2, p1)
	if err != nil {
		return nil, fmt.Errorf("failed to score %s: %w", name2, err)
	}

	result := resultFromScores(score1, score2)

	battleType := models.BattleTypePlayer
	if id2 == models.BotOpponentID {
		battleType = models.BattleTypeBot
	}

	display := models.BattleDisplay{
		Player1Pokemon: models.BattlePokemon{Pokemon: *p1, BattleScore: score1},
		Player2Pokemon: models.BattlePokemon{Pokemon: *p2, BattleScore: score2},
		Player1Name:    name1,
		Player2Name:    name2,
		BattleType:     battleType,
		Result:         result,
	}

	storage := models.BattleStorage{
		MyPokemon:       battleRecord(p1, score1),
		OpponentPokemon: battleRecord(p2, score2),
		Result:          result,
	}

	// Opponent name is persisted for player battles only
	if battleType == models.BattleTypePlayer {
		storage.OpponentName = name2
	}

	return &models.BattleData{Display: display, Storage: storage}, nil
}

// RecordPlayerBattle appends one history entry per participant, mirrored:
// the opponent's entry swaps the snapshots and flips the result.
func (s *BattleService) RecordPlayerBattle(challengerID, opponentID string, data *models.BattleData) error {
	now := time.Now()

	challengerEntry := models.BattleHistoryEntry{
		Timestamp: now,
		Type:      models.BattleTypePlayer,
		Opponent:  data.Display.Player2Name,
		Details:   &data.Storage,
	}

	opponentStorage := models.BattleStorage{
		MyPokemon:       data.Storage.OpponentPokemon,
		OpponentPokemon: data.Storage.MyPokemon,
		OpponentName:    data.Display.Player1Name,
		Result:          data.Storage.Result.Mirror(),
	}
	opponentEntry := models.BattleHistoryEntry{
		Timestamp: now,
		Type:      models.BattleTypePlayer,
		Opponent:  data.Display.Player1Name,
		Details:   &opponentStorage,
	}

	if err := s.battleRepo.Append(challengerID, challengerEntry); err != nil {
		return fmt.Errorf("failed to record challenger battle: %w", err)
	}
	if err := s.battleRepo.Append(opponentID, opponentEntry); err != nil {
		return fmt.Errorf("failed to record opponent battle: %w", err)
	}

	return nil
}

// RecordBotBattle appends the user's history entry for a bot battle
func (s *BattleService) RecordBotBattle(userID string, data *models.BattleData) error {
	entry := models.BattleHistoryEntry{
		Timestamp: time.Now(),
		Type:      models.BattleTypeBot,
		Opponent:  data.Display.Player2Name,
		Details:   &data.Storage,
	}

	if err := s.battleRepo.Append(userID, entry); err != nil {
		return fmt.Errorf("failed to record bot battle: %w", err)
	}

	return nil
}

func resultFromScores(score1, score2 float64) models.BattleResult {
	switch {
	case score1 > score2:
		return models.ResultWon
	case score2 > score1:
		return models.ResultLost
	default:
		return models.ResultTie
	}
}

func battleRecord(p *models.Pokemon, score float64) models.BattleRecord {
	return models.BattleRecord{
		Name:   p.Name,
		Sprite: p.Sprite(),
		Score:  score,
	}
}
