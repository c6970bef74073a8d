package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/irad15/PokemonProject/internal/service"
	"github.com/irad15/PokemonProject/pkg/logger"
)

// LeaderboardHandler serves the ranked standings
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Standings handles GET /api/leaderboard
func (h *LeaderboardHandler) Standings(c *gin.Context) {
	userID := c.GetString("userId")

	rows, err := h.leaderboard.Standings(userID)
	if err != nil {
		logger.Error("Failed to build leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
