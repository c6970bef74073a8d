package api

import (
	"github.com/gin-gonic/gin"
	"github.com/irad15/PokemonProject/internal/api/handlers"
	"github.com/irad15/PokemonProject/internal/api/middleware"
	"github.com/irad15/PokemonProject/internal/config"
	"github.com/irad15/PokemonProject/internal/repository"
	"github.com/irad15/PokemonProject/internal/service"
	jwtutil "github.com/irad15/PokemonProject/pkg/jwt"
	"github.com/irad15/PokemonProject/pkg/pokeapi"
	"github.com/irad15/PokemonProject/pkg/storage"
)

// SetupRouter wires repositories, services and handlers and returns the
// configured engine together with the arena service so the caller controls
// its sweep lifecycle.
func SetupRouter(cfg *config.Config, store *storage.Storage) (*gin.Engine, *service.ArenaService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Repositories
	userRepo := repository.NewUserRepository(store)
	favoriteRepo := repository.NewFavoriteRepository(store, cfg.MaxFavorites)
	battleRepo := repository.NewBattleRepository(store, cfg.DailyBattleLimit)

	// Services
	userService := service.NewUserService(userRepo)
	scoreService := service.NewScoreService(cfg.TypeWeightedBattles, nil)
	battleService := service.NewBattleService(scoreService, battleRepo)
	presenceService := service.NewPresenceService(cfg.PresenceWindow)
	leaderboardService := service.NewLeaderboardService(userRepo, battleRepo)
	arenaService := service.NewArenaService(
		service.ArenaOptions{
			ChallengeTTL:      cfg.ChallengeTTL,
			DeclinedNoticeTTL: cfg.DeclinedNoticeTTL,
			BotBattleTTL:      cfg.BotBattleTTL,
			SweepInterval:     cfg.SweepInterval,
		},
		battleService,
		battleRepo,
		favoriteRepo,
		presenceService,
		pokeapi.NewClient(cfg.PokeAPIURL),
	)

	jwtManager := jwtutil.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, jwtManager)
	favoritesHandler := handlers.NewFavoritesHandler(favoriteRepo)
	arenaHandler := handlers.NewArenaHandler(arenaService, presenceService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(middleware.GeneralAPIRateLimit())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/status", authHandler.Status)
		}

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg))
		{
			favorites := protected.Group("/favorites")
			{
				favorites.GET("", favoritesHandler.List)
				favorites.POST("", favoritesHandler.Add)
				favorites.DELETE("/:id", favoritesHandler.Remove)
			}

			arena := protected.Group("/arena")
			{
				arena.GET("/status", arenaHandler.Status)
				arena.GET("/history", arenaHandler.History)
				arena.GET("/online-players", arenaHandler.OnlinePlayers)
				arena.POST("/remove-online", arenaHandler.RemoveOnline)
				arena.GET("/pending-challenges", arenaHandler.PendingChallenges)
				arena.GET("/accepted-challenges", arenaHandler.AcceptedChallenges)
				arena.GET("/declined-challenges", arenaHandler.DeclinedChallenges)
				arena.GET("/battle-data/:battleId", arenaHandler.BattleData)

				arena.POST("/send-challenge", middleware.ChallengeRateLimit(), arenaHandler.SendChallenge)
				arena.POST("/accept-challenge", middleware.ChallengeRateLimit(), arenaHandler.AcceptChallenge)
				arena.POST("/decline-challenge", middleware.ChallengeRateLimit(), arenaHandler.DeclineChallenge)
				arena.POST("/create-bot-battle", middleware.BattleCreationRateLimit(), arenaHandler.CreateBotBattle)
			}

			protected.GET("/leaderboard", leaderboardHandler.Standings)
		}
	}

	return router, arenaService
}
