package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/internal/repository"
	"github.com/irad15/PokemonProject/pkg/logger"
)

// PokemonFetcher is the external Pokemon data source consumed during
// challenge acceptance; both per-battle fetches are issued concurrently.
type PokemonFetcher interface {
	FetchPair(ctx context.Context, id1, id2 int) (*models.Pokemon, *models.Pokemon, error)
}

// ArenaOptions carries the arena TTL windows; every window is named config,
// never a literal at a call site.
type ArenaOptions struct {
	ChallengeTTL      time.Duration
	DeclinedNoticeTTL time.Duration
	BotBattleTTL      time.Duration
	SweepInterval     time.Duration
}

// ArenaStatus is the per-user arena summary
type ArenaStatus struct {
	BattlesUsed      int  `json:"battlesUsed"`
	BattlesRemaining int  `json:"battlesRemaining"`
	CanBattle        bool `json:"canBattle"`
	HasFavorites     bool `json:"hasFavorites"`
	FavoritesCount   int  `json:"favoritesCount"`
}

// ArenaService owns all ephemeral arena state: pending challenges, declined
// notices and staged bot battles. One mutex guards the three maps so
// concurrent handlers serialize deterministically. Expiry is swept lazily on
// every read and by a background ticker.
type ArenaService struct {
	opts          ArenaOptions
	battleService *BattleService
	battleRepo    *repository.BattleRepository
	favoriteRepo  *repository.FavoriteRepository
	presence      *PresenceService
	fetcher       PokemonFetcher

	mu         sync.Mutex
	challenges map[string]*models.Challenge
	declined   map[string]*models.DeclinedChallenge
	botBattles map[string]*models.BotBattle

	now  func() time.Time
	pick func(n int) int

	runMu    sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewArenaService(
	opts ArenaOptions,
	battleService *BattleService,
	battleRepo *repository.BattleRepository,
	favoriteRepo *repository.FavoriteRepository,
	presence *PresenceService,
	fetcher PokemonFetcher,
) *ArenaService {
	return &ArenaService{
		opts:          opts,
		battleService: battleService,
		battleRepo:    battleRepo,
		favoriteRepo:  favoriteRepo,
		presence:      presence,
		fetcher:       fetcher,
		challenges:    make(map[string]*models.Challenge),
		declined:      make(map[string]*models.DeclinedChallenge),
		botBattles:    make(map[string]*models.BotBattle),
		now:           time.Now,
		pick:          defaultPick,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the periodic expiry sweep
func (s *ArenaService) Start() {
	s.runMu.Lock()
	if s.running {
		s.runMu.Unlock()
		return
	}
	s.running = true
	s.runMu.Unlock()

	logger.Info("Starting arena sweep loop", "interval", s.opts.SweepInterval)

	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop halts the sweep loop and waits for it to finish
func (s *ArenaService) Stop() {
	s.runMu.Lock()
	if !s.running {
		s.runMu.Unlock()
		return
	}
	s.running = false
	s.runMu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	logger.Info("Arena sweep loop stopped")
}

func (s *ArenaService) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopChan:
			return
		}
	}
}

// Sweep removes expired arena state
func (s *ArenaService) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
}

// Status summarizes the user's arena eligibility
func (s *ArenaService) Status(userID string) (*ArenaStatus, error) {
	battlesToday, err := s.battleRepo.CountToday(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count battles: %w", err)
	}

	favorites, err := s.favoriteRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	limit := s.battleRepo.DailyLimit()
	remaining := limit - battlesToday
	if remaining < 0 {
		remaining = 0
	}

	return &ArenaStatus{
		BattlesUsed:      battlesToday,
		BattlesRemaining: remaining,
		CanBattle:        battlesToday < limit,
		HasFavorites:     len(favorites) > 0,
		FavoritesCount:   len(favorites),
	}, nil
}

// History returns the user's full battle log
func (s *ArenaService) History(userID string) ([]models.BattleHistoryEntry, error) {
	return s.battleRepo.LoadAll(userID)
}

// CreateChallenge validates eligibility and inserts a pending challenge.
// Precondition failures come back as the full ordered ValidationErrors list.
func (s *ArenaService) CreateChallenge(challengerID, challengerName, opponentID string) (*models.Challenge, error) {
	opponent := s.presence.Get(opponentID)
	if opponent == nil {
		return nil, ValidationErrors{"Opponent is no longer online"}
	}

	challengerFavorites, err := s.favoriteRepo.List(challengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenger favorites: %w", err)
	}
	opponentFavorites, err := s.favoriteRepo.List(opponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load opponent favorites: %w", err)
	}
	canBattle, err := s.battleRepo.HasQuotaRemaining(challengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check quota: %w", err)
	}

	var violations ValidationErrors
	if !canBattle {
		violations = append(violations, s.quotaMessage())
	}
	if len(challengerFavorites) == 0 {
		violations = append(violations, "You need at least one favorite Pokemon to battle")
	}
	if len(opponentFavorites) == 0 {
		violations = append(violations, "Opponent has no favorite Pokemon")
	}
	if len(violations) > 0 {
		return nil, violations
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())

	// At most one pending challenge per pair, in either direction
	for _, ch := range s.challenges {
		if ch.Status != models.ChallengeStatusPending {
			continue
		}
		if (ch.ChallengerID == challengerID && ch.OpponentID == opponentID) ||
			(ch.ChallengerID == opponentID && ch.OpponentID == challengerID) {
			return nil, ErrDuplicateChallenge
		}
	}

	// A fresh challenge supersedes any accepted leftovers and stale decline
	// notices involving the challenger
	for id, ch := range s.challenges {
		if ch.Status == models.ChallengeStatusAccepted && ch.Involves(challengerID) {
			delete(s.challenges, id)
		}
	}
	for id, notice := range s.declined {
		if notice.ChallengerID == challengerID || notice.OpponentID == challengerID {
			delete(s.declined, id)
		}
	}

	challenge := &models.Challenge{
		ID:             "challenge_" + uuid.New().String(),
		ChallengerID:   challengerID,
		ChallengerName: challengerName,
		OpponentID:     opponentID,
		OpponentName:   opponent.FirstName,
		Status:         models.ChallengeStatusPending,
		CreatedAt:      s.now(),
	}
	s.challenges[challenge.ID] = challenge

	logger.Info("Challenge created",
		"challengeId", challenge.ID,
		"challenger", challengerID,
		"opponent", opponentID,
	)

	return challenge, nil
}

// AcceptChallenge transitions a pending challenge to accepted, fetches both
// combatant snapshots concurrently, builds the battle and records history
// for both sides. A racing second accept of an already-accepted challenge
// gets the same redirect instead of an error. Fetch failure rolls the
// status back to pending so the accept can be retried before the TTL sweep
// collects it.
func (s *ArenaService) AcceptChallenge(ctx context.Context, challengeID, userID string) (string, error) {
	s.mu.Lock()
	challenge, ok := s.challenges[challengeID]
	if !ok || challenge.OpponentID != userID {
		s.mu.Unlock()
		return "", ErrInvalidChallenge
	}
	if challenge.Status == models.ChallengeStatusAccepted {
		s.mu.Unlock()
		return battleRedirect(challengeID), nil
	}
	if challenge.Status != models.ChallengeStatusPending {
		s.mu.Unlock()
		return "", ErrChallengeExpired
	}

	challengerID := challenge.ChallengerID
	challengerName := challenge.ChallengerName
	opponentName := challenge.OpponentName

	// Reserve the challenge before releasing the lock so a concurrent
	// accept cannot run the fetch-and-record side effects twice
	challenge.Status = models.ChallengeStatusAccepted
	s.mu.Unlock()

	challengerCan, err := s.battleRepo.HasQuotaRemaining(challengerID)
	if err == nil {
		var opponentCan bool
		opponentCan, err = s.battleRepo.HasQuotaRemaining(userID)
		if err == nil && (!challengerCan || !opponentCan) {
			s.setStatus(challengeID, models.ChallengeStatusExpired)
			return "", ErrChallengeExpired
		}
	}
	if err != nil {
		s.setStatus(challengeID, models.ChallengeStatusPending)
		return "", fmt.Errorf("failed to check quota: %w", err)
	}

	challengerFavorites, err := s.favoriteRepo.List(challengerID)
	if err != nil {
		s.setStatus(challengeID, models.ChallengeStatusPending)
		return "", fmt.Errorf("failed to load challenger favorites: %w", err)
	}
	opponentFavorites, err := s.favoriteRepo.List(userID)
	if err != nil {
		s.setStatus(challengeID, models.ChallengeStatusPending)
		return "", fmt.Errorf("failed to load opponent favorites: %w", err)
	}
	if len(challengerFavorites) == 0 || len(opponentFavorites) == 0 {
		s.setStatus(challengeID, models.ChallengeStatusExpired)
		return "", ErrChallengeExpired
	}

	// One random favorite per participant
	challengerPokemonID := challengerFavorites[s.pick(len(challengerFavorites))].PokemonID
	opponentPokemonID := opponentFavorites[s.pick(len(opponentFavorites))].PokemonID

	challengerPokemon, opponentPokemon, err := s.fetcher.FetchPair(ctx, challengerPokemonID, opponentPokemonID)
	if err != nil {
		logger.Error("Snapshot fetch failed during accept",
			"challengeId", challengeID,
			"error", err,
		)
		s.setStatus(challengeID, models.ChallengeStatusPending)
		return "", ErrUpstreamFetch
	}

	data, err := s.battleService.BuildBattle(
		challengerPokemon, opponentPokemon,
		challengerName, opponentName,
		challengerID, userID,
	)
	if err != nil {
		s.setStatus(challengeID, models.ChallengeStatusPending)
		return "", err
	}

	if err := s.battleService.RecordPlayerBattle(challengerID, userID, data); err != nil {
		logger.Error("Failed to record player battle", "challengeId", challengeID, "error", err)
		// History may be half-written, so the accept cannot be retried;
		// expire the challenge and let the sweep reclaim it
		s.setStatus(challengeID, models.ChallengeStatusExpired)
		return "", err
	}

	s.mu.Lock()
	if ch, ok := s.challenges[challengeID]; ok {
		ch.BattleData = &data.Display
		// The acceptor redirects synchronously; the challenger discovers
		// acceptance via polling
		ch.NotifiedUsers = append(ch.NotifiedUsers, userID)
	}
	delete(s.declined, challengeID)
	s.mu.Unlock()

	// The battle concluded for both participants; drop them from the lobby
	s.presence.Remove(challengerID)
	s.presence.Remove(userID)

	logger.Info("Challenge accepted",
		"challengeId", challengeID,
		"challenger", challengerID,
		"opponent", userID,
		"result", data.Display.Result,
	)

	return battleRedirect(challengeID), nil
}

// DeclineChallenge transitions a pending challenge to declined and leaves a
// challenger-visible notice, consumed once by PollDeclined
func (s *ArenaService) DeclineChallenge(challengeID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[challengeID]
	if !ok || challenge.OpponentID != userID {
		return ErrInvalidChallenge
	}
	if challenge.Status != models.ChallengeStatusPending {
		return ErrChallengeExpired
	}

	challenge.Status = models.ChallengeStatusDeclined
	s.declined[challengeID] = &models.DeclinedChallenge{
		Challenge:  *challenge,
		DeclinedBy: challenge.OpponentName,
		DeclinedAt: s.now(),
	}
	delete(s.challenges, challengeID)

	logger.Info("Challenge declined", "challengeId", challengeID, "opponent", userID)

	return nil
}

// PendingChallengesFor lists pending challenges addressed to the user
func (s *ArenaService) PendingChallengesFor(userID string) []models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())

	challenges := []models.Challenge{}
	for _, ch := range s.challenges {
		if ch.Status == models.ChallengeStatusPending && ch.OpponentID == userID {
			challenges = append(challenges, *ch)
		}
	}

	return challenges
}

// PollAccepted returns the accepted challenge involving the user that they
// have not been notified of yet, marking them notified. Returns nil when
// there is nothing to report. Once both participants have been notified the
// challenge is released to the sweep.
func (s *ArenaService) PollAccepted(userID string) *models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())

	for _, ch := range s.challenges {
		if ch.Status != models.ChallengeStatusAccepted || ch.BattleData == nil {
			continue
		}
		if !ch.Involves(userID) || ch.Notified(userID) {
			continue
		}

		ch.NotifiedUsers = append(ch.NotifiedUsers, userID)
		notified := *ch
		return &notified
	}

	return nil
}

// PollDeclined returns the decline notice for a challenge the user sent, if
// any, deleting it so the alert fires once
func (s *ArenaService) PollDeclined(userID string) *models.DeclinedChallenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())

	for id, notice := range s.declined {
		if notice.ChallengerID == userID {
			delete(s.declined, id)
			return notice
		}
	}

	return nil
}

// CreateBotBattle validates the quota, builds a battle against the bot and
// stages its display data under a synthetic id for later retrieval
func (s *ArenaService) CreateBotBattle(userID string, playerPokemon, botPokemon *models.Pokemon) (string, error) {
	canBattle, err := s.battleRepo.HasQuotaRemaining(userID)
	if err != nil {
		return "", fmt.Errorf("failed to check quota: %w", err)
	}
	if !canBattle {
		return "", ValidationErrors{s.quotaMessage()}
	}

	data, err := s.battleService.BuildBattle(
		playerPokemon, botPokemon,
		"You", "Bot",
		userID, models.BotOpponentID,
	)
	if err != nil {
		return "", err
	}

	// The uuid suffix keeps two stagings in the same millisecond distinct
	battleID := fmt.Sprintf("bot_%s_%d_%s", userID, s.now().UnixMilli(), uuid.New().String()[:8])

	s.mu.Lock()
	s.sweepLocked(s.now())
	s.botBattles[battleID] = &models.BotBattle{
		BattleID:   battleID,
		BattleData: data.Display,
		CreatedAt:  s.now(),
	}
	s.mu.Unlock()

	if err := s.battleService.RecordBotBattle(userID, data); err != nil {
		return "", err
	}

	logger.Info("Bot battle created", "battleId", battleID, "result", data.Display.Result)

	return battleID, nil
}

// BattleData retrieves staged display data for a bot battle or an accepted
// challenge
func (s *ArenaService) BattleData(battleID string) (*models.BattleDisplay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())

	if strings.HasPrefix(battleID, "bot_") {
		if battle, ok := s.botBattles[battleID]; ok {
			display := battle.BattleData
			return &display, nil
		}
		return nil, ErrBattleNotFound
	}

	if challenge, ok := s.challenges[battleID]; ok && challenge.BattleData != nil {
		return challenge.BattleData, nil
	}

	return nil, ErrBattleNotFound
}

func (s *ArenaService) setStatus(challengeID string, status models.ChallengeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if challenge, ok := s.challenges[challengeID]; ok {
		challenge.Status = status
	}
}

// sweepLocked removes expired state; the caller holds s.mu
func (s *ArenaService) sweepLocked(now time.Time) {
	for id, ch := range s.challenges {
		switch ch.Status {
		case models.ChallengeStatusPending:
			if now.Sub(ch.CreatedAt) > s.opts.ChallengeTTL {
				delete(s.challenges, id)
			}
		case models.ChallengeStatusAccepted:
			if len(ch.NotifiedUsers) >= 2 {
				delete(s.challenges, id)
			}
		case models.ChallengeStatusExpired:
			if now.Sub(ch.CreatedAt) > s.opts.ChallengeTTL {
				delete(s.challenges, id)
			}
		}
	}

	for id, notice := range s.declined {
		if now.Sub(notice.DeclinedAt) > s.opts.DeclinedNoticeTTL {
			delete(s.declined, id)
		}
	}

	for id, battle := range s.botBattles {
		if now.Sub(battle.CreatedAt) > s.opts.BotBattleTTL {
			delete(s.botBattles, id)
		}
	}
}

func (s *ArenaService) quotaMessage() string {
	return fmt.Sprintf("You have used all %d battles for today. Come back tomorrow!", s.battleRepo.DailyLimit())
}

func battleRedirect(challengeID string) string {
	return "/arena/battle?challengeId=" + challengeID
}

func defaultPick(n int) int {
	return rand.Intn(n)
}
