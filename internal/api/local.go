package api

import (
	"context"
	"fmt"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

// Local implements Service on top of the SQLite store, so the scoreboard
// works without any network.
type Local struct {
	store *storage.Store
}

// NewLocal creates a Local service backed by store.
func NewLocal(store *storage.Store) *Local {
	return &Local{store: store}
}

// UpsertUser implements Service.
func (l *Local) UpsertUser(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.store.UpsertPlayer(name); err != nil {
		return fmt.Errorf("api: upsert user: %w", err)
	}
	return nil
}

// StartSession implements Service.
func (l *Local) StartSession(ctx context.Context, s SessionStart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := l.store.StartSession(storage.SessionRecord{
		ID:        s.SessionID,
		Player:    s.Player,
		Mode:      string(s.Mode),
		UISize:    string(s.UISize),
		StartedAt: s.StartedAt,
	})
	if err != nil {
		return fmt.Errorf("api: start session: %w", err)
	}
	return nil
}

// FinishRound implements Service.
func (l *Local) FinishRound(ctx context.Context, r RoundFinish) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := l.store.SaveRound(storage.RoundRecord{
		SessionID: r.SessionID,
		Round:     r.Round,
		Player:    r.Player,
		Mode:      string(r.Mode),
		Score:     r.Score,
	})
	if err != nil {
		return fmt.Errorf("api: finish round: %w", err)
	}
	return nil
}

// FinishSession implements Service. Round totals are kept by the store,
// so only the session id is used.
func (l *Local) FinishSession(ctx context.Context, s SessionFinish) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.store.FinishSession(s.SessionID); err != nil {
		return fmt.Errorf("api: finish session: %w", err)
	}
	return nil
}

// GetHighScores implements Service.
func (l *Local) GetHighScores(ctx context.Context, mode core.GameMode, limit int) ([]HighScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := l.store.TopScores(string(mode), limit)
	if err != nil {
		return nil, fmt.Errorf("api: high scores: %w", err)
	}

	scores := make([]HighScore, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, HighScore{
			Player: e.Player,
			Mode:   core.GameMode(e.Mode),
			Score:  e.Score,
			At:     e.CreatedAt,
		})
	}
	return scores, nil
}

var _ Service = (*Local)(nil)
