package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/irad15/PokemonProject/internal/repository"
	"github.com/irad15/PokemonProject/pkg/logger"
)

// FavoritesHandler manages the per-user favorites list
type FavoritesHandler struct {
	favoriteRepo *repository.FavoriteRepository
}

func NewFavoritesHandler(favoriteRepo *repository.FavoriteRepository) *FavoritesHandler {
	return &FavoritesHandler{favoriteRepo: favoriteRepo}
}

type addFavoriteRequest struct {
	PokemonID int `json:"pokemonId" binding:"required"`
}

// List handles GET /api/favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	userID := c.GetString("userId")

	favorites, err := h.favoriteRepo.List(userID)
	if err != nil {
		logger.Error("Failed to load favorites", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// Add handles POST /api/favorites
func (h *FavoritesHandler) Add(c *gin.Context) {
	userID := c.GetString("userId")

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PokemonID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid pokemonId is required"})
		return
	}

	favorites, err := h.favoriteRepo.Add(userID, req.PokemonID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateFavorite):
			c.JSON(http.StatusConflict, gin.H{"error": "Pokemon is already in favorites"})
		case errors.Is(err, repository.ErrFavoriteLimit):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("You can have at most %d favorite Pokemon", h.favoriteRepo.Limit()),
			})
		default:
			logger.Error("Failed to add favorite", "userId", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"favorites": favorites})
}

// Remove handles DELETE /api/favorites/:id
func (h *FavoritesHandler) Remove(c *gin.Context) {
	userID := c.GetString("userId")

	pokemonID, err := strconv.Atoi(c.Param("id"))
	if err != nil || pokemonID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid pokemon id is required"})
		return
	}

	favorites, err := h.favoriteRepo.Remove(userID, pokemonID)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pokemon is not in favorites"})
			return
		}
		logger.Error("Failed to remove favorite", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
