package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/irad15/PokemonProject/internal/config"
	"github.com/irad15/PokemonProject/pkg/storage"
)

func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:                "8080",
		Env:                 "test",
		JWTSecret:           "test-secret",
		JWTExpiration:       time.Hour,
		PresenceWindow:      5 * time.Minute,
		ChallengeTTL:        30 * time.Second,
		DeclinedNoticeTTL:   10 * time.Second,
		BotBattleTTL:        10 * time.Minute,
		SweepInterval:       10 * time.Second,
		DailyBattleLimit:    5,
		MaxFavorites:        10,
		TypeWeightedBattles: true,
	}

	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	router, _ := SetupRouter(cfg, store)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func registerUser(t *testing.T, router *gin.Engine, firstName, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": firstName,
		"email":     email,
		"password":  "pikachu1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register status = %d, body: %s", w.Code, w.Body.String())
	}

	token, ok := decodeBody(t, w)["token"].(string)
	if !ok || token == "" {
		t.Fatal("Register response missing token")
	}
	return token
}

func testPokemonJSON(name string, id int) map[string]interface{} {
	stat := func(value int, statName string) map[string]interface{} {
		return map[string]interface{}{
			"base_stat": value,
			"stat":      map[string]interface{}{"name": statName},
		}
	}
	return map[string]interface{}{
		"id":   id,
		"name": name,
		"stats": []interface{}{
			stat(35, "hp"), stat(55, "attack"), stat(40, "defense"),
			stat(50, "special-attack"), stat(50, "special-defense"), stat(90, "speed"),
		},
		"types":   []interface{}{map[string]interface{}{"slot": 1, "type": map[string]interface{}{"name": "electric"}}},
		"sprites": map[string]interface{}{"front_default": fmt.Sprintf("https://example.com/%d.png", id)},
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	router := newTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Health status = %d", w.Code)
	}
	if decodeBody(t, w)["status"] != "ok" {
		t.Errorf("Health body = %s", w.Body.String())
	}
}

func TestAPI_RegisterLoginStatus(t *testing.T) {
	router := newTestAPI(t)

	token := registerUser(t, router, "Ash", "ash@example.com")

	// Duplicate email rejected
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Gary",
		"email":     "ash@example.com",
		"password":  "eevee123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate register status = %d, want 409", w.Code)
	}

	// Login works with the registered credentials
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ash@example.com",
		"password": "pikachu1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login status = %d, body: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ash@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Bad login status = %d, want 401", w.Code)
	}

	// Auth status reflects the token
	w = doJSON(t, router, http.MethodGet, "/api/auth/status", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Auth status = %d", w.Code)
	}
	if decodeBody(t, w)["isAuthenticated"] != true {
		t.Errorf("Auth status body = %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/auth/status", "", nil)
	if decodeBody(t, w)["isAuthenticated"] != false {
		t.Errorf("Anonymous auth status body = %s", w.Body.String())
	}
}

func TestAPI_RegisterValidation(t *testing.T) {
	router := newTestAPI(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "A",
		"email":     "nope",
		"password":  "123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Invalid register status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "First name must be at least 2 characters long" {
		t.Errorf("First error = %v", body["error"])
	}
	if violations, ok := body["errors"].([]interface{}); !ok || len(violations) != 3 {
		t.Errorf("Errors list = %v", body["errors"])
	}
}

func TestAPI_FavoritesRequireAuth(t *testing.T) {
	router := newTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/favorites", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Unauthenticated favorites status = %d, want 401", w.Code)
	}
}

func TestAPI_FavoritesFlow(t *testing.T) {
	router := newTestAPI(t)
	token := registerUser(t, router, "Ash", "ash@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/favorites", token, map[string]int{"pokemonId": 25})
	if w.Code != http.StatusCreated {
		t.Fatalf("Add favorite status = %d, body: %s", w.Code, w.Body.String())
	}

	// Duplicate add conflicts
	w = doJSON(t, router, http.MethodPost, "/api/favorites", token, map[string]int{"pokemonId": 25})
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate favorite status = %d, want 409", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/favorites", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("List favorites status = %d", w.Code)
	}
	favorites, ok := decodeBody(t, w)["favorites"].([]interface{})
	if !ok || len(favorites) != 1 {
		t.Fatalf("Favorites body = %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/api/favorites/25", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Remove favorite status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/favorites/25", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Remove missing favorite status = %d, want 404", w.Code)
	}
}

func TestAPI_ArenaStatusAndBotBattle(t *testing.T) {
	router := newTestAPI(t)
	token := registerUser(t, router, "Ash", "ash@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/arena/status", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Arena status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["battlesRemaining"] != float64(5) || body["canBattle"] != true {
		t.Errorf("Fresh arena status = %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/arena/create-bot-battle", token, map[string]interface{}{
		"player1Pokemon": testPokemonJSON("pikachu", 25),
		"player2Pokemon": testPokemonJSON("snorlax", 143),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Bot battle status = %d, body: %s", w.Code, w.Body.String())
	}
	battleID, ok := decodeBody(t, w)["battleId"].(string)
	if !ok || battleID == "" {
		t.Fatal("Bot battle response missing battleId")
	}

	w = doJSON(t, router, http.MethodGet, "/api/arena/battle-data/"+battleID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Battle data status = %d, body: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/arena/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("History status = %d", w.Code)
	}
	battles, ok := decodeBody(t, w)["battles"].([]interface{})
	if !ok || len(battles) != 1 {
		t.Fatalf("History body = %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/arena/status", token, nil)
	if decodeBody(t, w)["battlesUsed"] != float64(1) {
		t.Errorf("Arena status after battle = %s", w.Body.String())
	}
}

func TestAPI_OnlinePlayersExcludesSelf(t *testing.T) {
	router := newTestAPI(t)
	ashToken := registerUser(t, router, "Ash", "ash@example.com")
	mistyToken := registerUser(t, router, "Misty", "misty@example.com")

	// Both heartbeat via the listing endpoint
	doJSON(t, router, http.MethodGet, "/api/arena/online-players", mistyToken, nil)
	w := doJSON(t, router, http.MethodGet, "/api/arena/online-players", ashToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Online players status = %d", w.Code)
	}

	players, ok := decodeBody(t, w)["players"].([]interface{})
	if !ok || len(players) != 1 {
		t.Fatalf("Players body = %s", w.Body.String())
	}
	player := players[0].(map[string]interface{})
	if player["firstName"] != "Misty" {
		t.Errorf("Listed player = %v", player)
	}
}

func TestAPI_Leaderboard(t *testing.T) {
	router := newTestAPI(t)
	token := registerUser(t, router, "Ash", "ash@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/leaderboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Leaderboard status = %d", w.Code)
	}
	rows, ok := decodeBody(t, w)["leaderboard"].([]interface{})
	if !ok || len(rows) != 0 {
		t.Errorf("Leaderboard body = %s", w.Body.String())
	}
}

func TestAPI_SendChallengeValidation(t *testing.T) {
	router := newTestAPI(t)
	token := registerUser(t, router, "Ash", "ash@example.com")

	// Challenging an offline opponent fails validation
	w := doJSON(t, router, http.MethodPost, "/api/arena/send-challenge", token, map[string]string{
		"opponentId": "nobody",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Offline challenge status = %d, want 400", w.Code)
	}
	if decodeBody(t, w)["error"] != "Opponent is no longer online" {
		t.Errorf("Offline challenge body = %s", w.Body.String())
	}
}
