// Package api is the boundary to the remote scoring service.
//
// The remote backend does not exist yet: Stub logs every call and succeeds,
// Local records the same calls in the SQLite store. Callers on the game loop
// go through a Notifier so a slow or failing service never stalls a round.
package api

import (
	"context"
	"time"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// SessionStart is sent when the player submits the menu.
type SessionStart struct {
	SessionID string
	Player    string
	Mode      core.GameMode
	UISize    core.UISizePreset
	StartedAt time.Time
}

// RoundFinish is sent when a round's countdown reaches zero.
type RoundFinish struct {
	SessionID string
	Round     int
	Player    string
	Mode      core.GameMode
	Score     int
}

// SessionFinish is sent when the player leaves the results screen for the
// menu or quits.
type SessionFinish struct {
	SessionID string
	Rounds    int
	BestScore int
}

// HighScore is one entry of a mode's leaderboard.
type HighScore struct {
	Player string
	Mode   core.GameMode
	Score  int
	At     time.Time
}

// Service is the remote scoring capability.
type Service interface {
	UpsertUser(ctx context.Context, name string) error
	StartSession(ctx context.Context, s SessionStart) error
	FinishRound(ctx context.Context, r RoundFinish) error
	FinishSession(ctx context.Context, s SessionFinish) error
	GetHighScores(ctx context.Context, mode core.GameMode, limit int) ([]HighScore, error)
}
