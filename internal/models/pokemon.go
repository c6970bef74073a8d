package models

// Pokemon is a point-in-time snapshot fetched from the PokeAPI. Only the
// fields the arena consumes are decoded; the JSON shape matches the upstream
// payload so client-supplied snapshots (bot battles) parse the same way.
type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Stats     []PokemonStat    `json:"stats"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Sprites   PokemonSprites   `json:"sprites"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability NamedResource `json:"ability"`
}

type PokemonSprites struct {
	FrontDefault string `json:"front_default"`
}

type NamedResource struct {
	Name string `json:"name"`
}

// Base stat array indices as served by the PokeAPI
const (
	StatHP = iota
	StatAttack
	StatDefense
	StatSpecialAttack
	StatSpecialDefense
	StatSpeed
	StatCount
)

// TypeNames returns the snapshot's type names in slot order
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// Sprite returns the front sprite URL persisted into battle history
func (p *Pokemon) Sprite() string {
	return p.Sprites.FrontDefault
}
