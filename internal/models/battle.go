package models

import "time"

type BattleResult string

const (
	ResultWon  BattleResult = "won"
	ResultLost BattleResult = "lost"
	ResultTie  BattleResult = "tie"
)

// Mirror returns the result from the other participant's perspective
func (r BattleResult) Mirror() BattleResult {
	switch r {
	case ResultWon:
		return ResultLost
	case ResultLost:
		return ResultWon
	default:
		return ResultTie
	}
}

type BattleType string

const (
	BattleTypeBot    BattleType = "bot"
	BattleTypePlayer BattleType = "player-vs-player"
)

// BotOpponentID marks the non-player side of a bot battle
const BotOpponentID = "bot"

// BattleRecord is the minimal per-side projection persisted into history
type BattleRecord struct {
	Name   string  `json:"name"`
	Sprite string  `json:"sprite"`
	Score  float64 `json:"score"`
}

// BattleStorage is the minimal battle record appended to a user's history.
// OpponentName is set for player battles only.
type BattleStorage struct {
	MyPokemon       BattleRecord `json:"myPokemon"`
	OpponentPokemon BattleRecord `json:"opponentPokemon"`
	OpponentName    string       `json:"opponentName,omitempty"`
	Result          BattleResult `json:"result"`
}

// BattlePokemon is a full snapshot annotated with its computed score
type BattlePokemon struct {
	Pokemon
	BattleScore float64 `json:"battleScore"`
}

// BattleDisplay is the full battle representation served to the battle
// screen. Never persisted.
type BattleDisplay struct {
	Player1Pokemon BattlePokemon `json:"player1Pokemon"`
	Player2Pokemon BattlePokemon `json:"player2Pokemon"`
	Player1Name    string        `json:"player1Name"`
	Player2Name    string        `json:"player2Name"`
	BattleType     BattleType    `json:"battleType"`
	Result         BattleResult  `json:"result"`
}

// BattleData bundles the two representations built from one scoring pass
type BattleData struct {
	Display BattleDisplay
	Storage BattleStorage
}

// BattleHistoryEntry is one line of a user's append-only battle log
type BattleHistoryEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      BattleType     `json:"type"`
	Opponent  string         `json:"opponent,omitempty"`
	Details   *BattleStorage `json:"details,omitempty"`
}

// BattleLog is the on-disk battles.json shape
type BattleLog struct {
	Battles []BattleHistoryEntry `json:"battles"`
}

// BotBattle is an ephemeral staged bot battle keyed by its synthetic id
type BotBattle struct {
	BattleID   string        `json:"battleId"`
	BattleData BattleDisplay `json:"battleData"`
	CreatedAt  time.Time     `json:"createdAt"`
}
