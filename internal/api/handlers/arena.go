package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/internal/service"
	"github.com/irad15/PokemonProject/pkg/logger"
)

// ArenaHandler exposes the battle arena: presence, challenges, bot battles
// and battle history
type ArenaHandler struct {
	arena    *service.ArenaService
	presence *service.PresenceService
}

func NewArenaHandler(arena *service.ArenaService, presence *service.PresenceService) *ArenaHandler {
	return &ArenaHandler{
		arena:    arena,
		presence: presence,
	}
}

type sendChallengeRequest struct {
	OpponentID string `json:"opponentId" binding:"required"`
}

type challengeActionRequest struct {
	ChallengeID string `json:"challengeId" binding:"required"`
}

type botBattleRequest struct {
	Player1Pokemon *models.Pokemon `json:"player1Pokemon" binding:"required"`
	Player2Pokemon *models.Pokemon `json:"player2Pokemon" binding:"required"`
}

// Status handles GET /api/arena/status
func (h *ArenaHandler) Status(c *gin.Context) {
	userID := c.GetString("userId")

	status, err := h.arena.Status(userID)
	if err != nil {
		logger.Error("Failed to load arena status", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load arena status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// History handles GET /api/arena/history
func (h *ArenaHandler) History(c *gin.Context) {
	userID := c.GetString("userId")

	battles, err := h.arena.History(userID)
	if err != nil {
		logger.Error("Failed to load battle history", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load battle history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"battles": battles})
}

// OnlinePlayers handles GET /api/arena/online-players. The request doubles as
// the caller's presence heartbeat; the response excludes the caller.
func (h *ArenaHandler) OnlinePlayers(c *gin.Context) {
	userID := c.GetString("userId")
	firstName := c.GetString("firstName")

	h.presence.Heartbeat(userID, firstName)

	players := []models.PresenceRecord{}
	for _, p := range h.presence.ListOnline() {
		if p.ID == userID {
			continue
		}
		players = append(players, p)
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}

// RemoveOnline handles POST /api/arena/remove-online
func (h *ArenaHandler) RemoveOnline(c *gin.Context) {
	userID := c.GetString("userId")

	h.presence.Remove(userID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendChallenge handles POST /api/arena/send-challenge
func (h *ArenaHandler) SendChallenge(c *gin.Context) {
	userID := c.GetString("userId")
	firstName := c.GetString("firstName")

	var req sendChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "opponentId is required"})
		return
	}
	if req.OpponentID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot challenge yourself"})
		return
	}

	challenge, err := h.arena.CreateChallenge(userID, firstName, req.OpponentID)
	if err != nil {
		h.respondArenaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"challenge": challenge})
}

// PendingChallenges handles GET /api/arena/pending-challenges
func (h *ArenaHandler) PendingChallenges(c *gin.Context) {
	userID := c.GetString("userId")

	c.JSON(http.StatusOK, gin.H{"challenges": h.arena.PendingChallengesFor(userID)})
}

// AcceptedChallenges handles GET /api/arena/accepted-challenges. At most one
// challenge comes back per poll and the caller is marked notified.
func (h *ArenaHandler) AcceptedChallenges(c *gin.Context) {
	userID := c.GetString("userId")

	challenge := h.arena.PollAccepted(userID)
	if challenge == nil {
		c.JSON(http.StatusOK, gin.H{"challenge": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

// DeclinedChallenges handles GET /api/arena/declined-challenges. The notice is
// consumed by the read so the alert fires once.
func (h *ArenaHandler) DeclinedChallenges(c *gin.Context) {
	userID := c.GetString("userId")

	notice := h.arena.PollDeclined(userID)
	if notice == nil {
		c.JSON(http.StatusOK, gin.H{"challenge": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": notice})
}

// AcceptChallenge handles POST /api/arena/accept-challenge
func (h *ArenaHandler) AcceptChallenge(c *gin.Context) {
	userID := c.GetString("userId")

	var req challengeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challengeId is required"})
		return
	}

	redirect, err := h.arena.AcceptChallenge(c.Request.Context(), req.ChallengeID, userID)
	if err != nil {
		h.respondArenaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect": redirect})
}

// DeclineChallenge handles POST /api/arena/decline-challenge
func (h *ArenaHandler) DeclineChallenge(c *gin.Context) {
	userID := c.GetString("userId")

	var req challengeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challengeId is required"})
		return
	}

	if err := h.arena.DeclineChallenge(req.ChallengeID, userID); err != nil {
		h.respondArenaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateBotBattle handles POST /api/arena/create-bot-battle
func (h *ArenaHandler) CreateBotBattle(c *gin.Context) {
	userID := c.GetString("userId")

	var req botBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both player1Pokemon and player2Pokemon are required"})
		return
	}

	battleID, err := h.arena.CreateBotBattle(userID, req.Player1Pokemon, req.Player2Pokemon)
	if err != nil {
		h.respondArenaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"battleId": battleID})
}

// BattleData handles GET /api/arena/battle-data/:battleId
func (h *ArenaHandler) BattleData(c *gin.Context) {
	battleID := c.Param("battleId")

	data, err := h.arena.BattleData(battleID)
	if err != nil {
		h.respondArenaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battleData": data})
}

func (h *ArenaHandler) respondArenaError(c *gin.Context, err error) {
	var validation service.ValidationErrors
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  validation.First(),
			"errors": validation,
		})
	case errors.Is(err, service.ErrDuplicateChallenge):
		c.JSON(http.StatusConflict, gin.H{"error": "A challenge between you and this player is already pending"})
	case errors.Is(err, service.ErrInvalidChallenge):
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
	case errors.Is(err, service.ErrChallengeExpired):
		c.JSON(http.StatusConflict, gin.H{"error": "Challenge is no longer available"})
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Battle not found"})
	case errors.Is(err, service.ErrUpstreamFetch):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch Pokemon data, please try again"})
	case errors.Is(err, service.ErrMalformedPokemonData):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Pokemon data"})
	default:
		logger.Error("Arena request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
