package service

import (
	"context"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// scoreRubric is the placeholder scoring breakdown applied to every session
// until a real evaluation model exists. The protocol around it (inputs,
// closure transaction, idempotence) is what matters here.
var scoreRubric = map[string]int{
	"diagnostic":      16,
	"compliance":      18,
	"communication":   15,
	"efficiency":      14,
	"business_impact": 13,
}

// ScoreService computes a session's score and closes it.
type ScoreService struct {
	sessionRepo domain.SessionRepository
	scoreRepo   domain.ScoreRepository
}

// NewScoreService creates a new score service
func NewScoreService(sessionRepo domain.SessionRepository, scoreRepo domain.ScoreRepository) *ScoreService {
	return &ScoreService{
		sessionRepo: sessionRepo,
		scoreRepo:   scoreRepo,
	}
}

// ScoreAndClose computes the breakdown and, in one storage transaction,
// records the score and transitions the session to closed. The running-state
// gate is the replay protection: a second call gets Conflict and no second
// score row is ever created.
func (s *ScoreService) ScoreAndClose(ctx context.Context, sessionID, callerID uuid.UUID) (*domain.Score, error) {
	session, err := loadForMutation(ctx, s.sessionRepo, sessionID, callerID)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int, len(scoreRubric))
	total := 0
	for name, points := range scoreRubric {
		breakdown[name] = points
		total += points
	}

	now := time.Now()
	score := &domain.Score{
		ID:        uuid.New(),
		SessionID: session.ID,
		Breakdown: breakdown,
		Total:     total,
		CreatedAt: now,
	}

	if err := s.scoreRepo.CreateAndCloseSession(ctx, score, now); err != nil {
		return nil, domain.UpstreamError("failed to record score", err)
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Int("total", total).
		Msg("session scored and closed")

	return score, nil
}
