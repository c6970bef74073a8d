package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Storage
	DataDir string

	// JWT
	JWTSecret     string
	JWTExpiration time.Duration

	// CORS
	CORSAllowedOrigins []string

	// External Pokemon data source
	PokeAPIURL string

	// Arena timing. Named here once; call sites never hardcode windows.
	PresenceWindow    time.Duration
	ChallengeTTL      time.Duration
	DeclinedNoticeTTL time.Duration
	BotBattleTTL      time.Duration
	SweepInterval     time.Duration

	// Arena limits
	DailyBattleLimit int
	MaxFavorites     int

	// Whether type effectiveness weights the attack term for all battles
	// (bot included), not only player-vs-player
	TypeWeightedBattles bool
}

func Load() (*Config, error) {
	// Load .env if present
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DataDir:             getEnv("DATA_DIR", "./data"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiration:       parseDuration(getEnv("JWT_EXPIRATION", "24h")),
		PokeAPIURL:          getEnv("POKEAPI_URL", "https://pokeapi.co/api/v2"),
		PresenceWindow:      parseDuration(getEnv("PRESENCE_WINDOW", "5m")),
		ChallengeTTL:        parseDuration(getEnv("CHALLENGE_TTL", "30s")),
		DeclinedNoticeTTL:   parseDuration(getEnv("DECLINED_NOTICE_TTL", "10s")),
		BotBattleTTL:        parseDuration(getEnv("BOT_BATTLE_TTL", "10m")),
		SweepInterval:       parseDuration(getEnv("SWEEP_INTERVAL", "10s")),
		DailyBattleLimit:    getEnvInt("DAILY_BATTLE_LIMIT", 5),
		MaxFavorites:        getEnvInt("MAX_FAVORITES", 10),
		TypeWeightedBattles: getEnvBool("TYPE_WEIGHTED_BATTLES", true),
		CORSAllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
