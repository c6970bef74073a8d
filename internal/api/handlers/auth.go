package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/irad15/PokemonProject/internal/service"
	jwtutil "github.com/irad15/PokemonProject/pkg/jwt"
	"github.com/irad15/PokemonProject/pkg/logger"
)

// AuthHandler handles registration, login and session status
type AuthHandler struct {
	userService *service.UserService
	jwtManager  *jwtutil.JWTManager
}

func NewAuthHandler(userService *service.UserService, jwtManager *jwtutil.JWTManager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.Register(req.FirstName, req.Email, req.Password)
	if err != nil {
		var validation service.ValidationErrors
		switch {
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  validation.First(),
				"errors": validation,
			})
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		default:
			logger.Error("Registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	token, err := h.jwtManager.Generate(user.ID, user.FirstName, user.Email)
	if err != nil {
		logger.Error("Failed to generate token", "userId", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("User registered", "userId", user.ID, "email", user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID, user.FirstName, user.Email)
	if err != nil {
		logger.Error("Failed to generate token", "userId", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Status handles GET /api/auth/status. A missing or invalid token is not an
// error here; the client uses this to decide which navigation to render.
func (h *AuthHandler) Status(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	claims, err := h.jwtManager.Verify(parts[1])
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"user": gin.H{
			"id":        claims.UserID,
			"firstName": claims.FirstName,
			"email":     claims.Email,
		},
	})
}
