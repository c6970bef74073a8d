package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/irad15/PokemonProject/internal/models"
)

// typeEffectiveness is the canonical 18-type chart. Entries are the
// attack multiplier of (attacker type, defender type); missing pairs are 1.
var typeEffectiveness = map[string]map[string]float64{
	"normal":   {"rock": 0.5, "ghost": 0, "steel": 0.5},
	"fire":     {"fire": 0.5, "water": 0.5, "grass": 2, "ice": 2, "bug": 2, "rock": 0.5, "dragon": 0.5, "steel": 2},
	"water":    {"fire": 2, "water": 0.5, "grass": 0.5, "ground": 2, "rock": 2, "dragon": 0.5},
	"electric": {"water": 2, "electric": 0.5, "grass": 0.5, "ground": 0, "flying": 2, "dragon": 0.5},
	"grass":    {"fire": 0.5, "water": 2, "grass": 0.5, "poison": 0.5, "ground": 2, "flying": 0.5, "bug": 0.5, "rock": 2, "dragon": 0.5, "steel": 0.5},
	"ice":      {"fire": 0.5, "water": 0.5, "grass": 2, "ice": 0.5, "ground": 2, "flying": 2, "dragon": 2, "steel": 0.5},
	"fighting": {"normal": 2, "ice": 2, "poison": 0.5, "flying": 0.5, "psychic": 0.5, "bug": 0.5, "rock": 2, "ghost": 0, "steel": 2, "fairy": 0.5},
	"poison":   {"grass": 2, "poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0, "fairy": 2},
	"ground":   {"fire": 2, "electric": 2, "grass": 0.5, "poison": 2, "flying": 0, "bug": 0.5, "rock": 2, "steel": 2},
	"flying":   {"electric": 0.5, "grass": 2, "fighting": 2, "bug": 2, "rock": 0.5, "steel": 0.5},
	"psychic":  {"fighting": 2, "poison": 2, "psychic": 0.5, "dark": 0, "steel": 0.5},
	"bug":      {"fire": 0.5, "grass": 2, "fighting": 0.5, "poison": 0.5, "flying": 0.5, "psychic": 2, "ghost": 0.5, "dark": 2, "steel": 0.5, "fairy": 0.5},
	"rock":     {"fire": 2, "ice": 2, "fighting": 0.5, "ground": 0.5, "flying": 2, "bug": 2, "steel": 0.5},
	"ghost":    {"normal": 0, "psychic": 2, "ghost": 2, "dark": 0.5},
	"dragon":   {"dragon": 2, "steel": 0.5, "fairy": 0},
	"dark":     {"fighting": 0.5, "psychic": 2, "ghost": 2, "dark": 0.5, "fairy": 0.5},
	"steel":    {"fire": 0.5, "water": 0.5, "electric": 0.5, "ice": 2, "rock": 2, "steel": 0.5, "fairy": 2},
	"fairy":    {"fighting": 2, "poison": 0.5, "dragon": 2, "dark": 2, "steel": 0.5},
}

// Stat weights of the base formula
const (
	weightHP      = 0.3
	weightAttack  = 0.4
	weightDefense = 0.2
	weightSpeed   = 0.1

	// Upper bound (exclusive) of the tie-breaking random term
	randomTermRange = 2.0
)

// ScoreService computes battle scores. Every invocation adds a fresh random
// term, so a score is never cached or reused across two battle computations.
type ScoreService struct {
	typeWeighted bool

	mu  sync.Mutex
	rng *rand.Rand
}

// NewScoreService creates the scoring engine. rng may be nil, in which case
// a time-seeded source is used; tests pass a seeded one for reproducibility.
func NewScoreService(typeWeighted bool, rng *rand.Rand) *ScoreService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &ScoreService{
		typeWeighted: typeWeighted,
		rng:          rng,
	}
}

// Score computes the battle score of pokemon, optionally weighted by type
// effectiveness against opponent. opponent may be nil.
func (s *ScoreService) Score(pokemon, opponent *models.Pokemon) (float64, error) {
	if len(pokemon.Stats) < models.StatCount {
		return 0, ErrMalformedPokemonData
	}
	if opponent != nil && len(opponent.Stats) < models.StatCount {
		return 0, ErrMalformedPokemonData
	}

	hp := float64(pokemon.Stats[models.StatHP].BaseStat)
	attack := float64(pokemon.Stats[models.StatAttack].BaseStat)
	defense := float64(pokemon.Stats[models.StatDefense].BaseStat)
	speed := float64(pokemon.Stats[models.StatSpeed].BaseStat)

	attackMultiplier := 1.0
	if opponent != nil && s.typeWeighted {
		attackMultiplier = typeMultiplier(pokemon.TypeNames(), opponent.TypeNames())
	}

	base := hp*weightHP + attack*weightAttack*attackMultiplier + defense*weightDefense + speed*weightSpeed

	return base + s.randomTerm(), nil
}

// randomTerm returns a uniform value in [0, randomTermRange)
func (s *ScoreService) randomTerm() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() * randomTermRange
}

// typeMultiplier is the product of chart entries over all
// (attacker type, defender type) pairs
func typeMultiplier(attackerTypes, defenderTypes []string) float64 {
	multiplier := 1.0

	for _, atk := range attackerTypes {
		chart, ok := typeEffectiveness[atk]
		if !ok {
			continue
		}
		for _, def := range defenderTypes {
			if value, ok := chart[def]; ok {
				multiplier *= value
			}
		}
	}

	return multiplier
}
