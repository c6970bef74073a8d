package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
	"github.com/irad15/PokemonProject/pkg/logger"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a PokeAPI client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// FetchPokemon fetches one Pokemon snapshot by id
func (c *Client) FetchPokemon(ctx context.Context, pokemonID int) (*models.Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, pokemonID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pokeapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pokeapi status %d for pokemon %d", resp.StatusCode, pokemonID)
	}

	pokemon := &models.Pokemon{}
	if err := json.NewDecoder(resp.Body).Decode(pokemon); err != nil {
		return nil, fmt.Errorf("failed to decode pokemon %d: %w", pokemonID, err)
	}

	return pokemon, nil
}

// FetchPair fetches two snapshots concurrently and joins both results.
// Either failure fails the pair; a battle needs both sides.
func (c *Client) FetchPair(ctx context.Context, id1, id2 int) (*models.Pokemon, *models.Pokemon, error) {
	type fetchResult struct {
		pokemon *models.Pokemon
		err     error
	}

	ch1 := make(chan fetchResult, 1)
	ch2 := make(chan fetchResult, 1)

	go func() {
		p, err := c.FetchPokemon(ctx, id1)
		ch1 <- fetchResult{pokemon: p, err: err}
	}()
	go func() {
		p, err := c.FetchPokemon(ctx, id2)
		ch2 <- fetchResult{pokemon: p, err: err}
	}()

	res1 := <-ch1
	res2 := <-ch2

	if res1.err != nil {
		logger.Error("Pokemon fetch failed", "pokemonId", id1, "error", res1.err)
		return nil, nil, res1.err
	}
	if res2.err != nil {
		logger.Error("Pokemon fetch failed", "pokemonId", id2, "error", res2.err)
		return nil, nil, res2.err
	}

	return res1.pokemon, res2.pokemon, nil
}
