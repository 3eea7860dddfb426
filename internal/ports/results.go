package ports

import (
	"context"
	"time"
)

// StageMark records the draw sequence at which a stage was first used.
type StageMark struct {
	Stage    string `json:"stage"`
	Sequence int    `json:"sequence"`
}

// GameResult is the persisted record of a finished game.
type GameResult struct {
	GameID     string      `json:"game_id"`
	MatchID    string      `json:"match_id"`
	StartedAt  time.Time   `json:"started_at"`
	EndedAt    time.Time   `json:"ended_at"`
	Players    []string    `json:"players"`
	Drawn      []int       `json:"drawn"`
	Stages     []StageMark `json:"stages"`
	KThreshold int         `json:"k_threshold"`
	Winners    []string    `json:"winners"`
	Reason     string      `json:"reason"`
}

// ResultStore persists finished games.
type ResultStore interface {
	// SaveResult stores a finished game. Saving the same GameID twice fails.
	SaveResult(ctx context.Context, result GameResult) error

	// ListResults returns up to limit results starting at cursor and the cursor for the next page.
	// An empty next cursor means there are no more results.
	ListResults(ctx context.Context, limit int, cursor string) ([]GameResult, string, error)
}
