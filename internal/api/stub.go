package api

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// Stub logs each call and reports success. It stands in until a real
// remote endpoint exists.
type Stub struct {
	logger *log.Logger
}

// NewStub creates a Stub. A nil logger uses log.Default().
func NewStub(logger *log.Logger) *Stub {
	if logger == nil {
		logger = log.Default()
	}
	return &Stub{logger: logger.WithPrefix("api")}
}

// UpsertUser implements Service.
func (s *Stub) UpsertUser(_ context.Context, name string) error {
	s.logger.Info("upsertUser", "name", name)
	return nil
}

// StartSession implements Service.
func (s *Stub) StartSession(_ context.Context, p SessionStart) error {
	s.logger.Info("startSession", "session", p.SessionID, "name", p.Player, "mode", p.Mode, "uiSize", p.UISize)
	return nil
}

// FinishRound implements Service.
func (s *Stub) FinishRound(_ context.Context, p RoundFinish) error {
	s.logger.Info("finishRound", "session", p.SessionID, "round", p.Round, "mode", p.Mode, "score", p.Score)
	return nil
}

// FinishSession implements Service.
func (s *Stub) FinishSession(_ context.Context, p SessionFinish) error {
	s.logger.Info("finishSession", "session", p.SessionID, "rounds", p.Rounds, "best", p.BestScore)
	return nil
}

// GetHighScores implements Service. The stub has no scores.
func (s *Stub) GetHighScores(_ context.Context, mode core.GameMode, limit int) ([]HighScore, error) {
	s.logger.Info("getHighScores", "mode", mode, "limit", limit)
	return nil, nil
}

var _ Service = (*Stub)(nil)
