package service

import (
	"context"
	"testing"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScoreServiceScoreAndClose(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	t.Run("records the rubric and closes in one call", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		scoreRepo := new(MockScoreRepository)
		svc := NewScoreService(sessionRepo, scoreRepo)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scoreRepo.On("CreateAndCloseSession", mock.Anything, mock.MatchedBy(func(s *domain.Score) bool {
			return s.SessionID == sessionID && s.Total == 76
		}), mock.AnythingOfType("time.Time")).Return(nil)

		score, err := svc.ScoreAndClose(context.Background(), sessionID, userID)
		require.NoError(t, err)

		assert.Equal(t, 76, score.Total)
		assert.Len(t, score.Breakdown, 5)

		sum := 0
		for _, v := range score.Breakdown {
			sum += v
		}
		assert.Equal(t, score.Total, sum, "total equals the sum of the breakdown")
		scoreRepo.AssertExpectations(t)
	})

	t.Run("second call on a closed session gets conflict, no second score", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		scoreRepo := new(MockScoreRepository)
		svc := NewScoreService(sessionRepo, scoreRepo)

		ended := time.Now()
		sessionRepo.On("Get", mock.Anything, sessionID).Return(&domain.Session{
			ID: sessionID, UserID: userID, State: domain.StateClosed, EndedAt: &ended,
		}, nil)

		_, err := svc.ScoreAndClose(context.Background(), sessionID, userID)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		scoreRepo.AssertNotCalled(t, "CreateAndCloseSession")
	})

	t.Run("another user's session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		scoreRepo := new(MockScoreRepository)
		svc := NewScoreService(sessionRepo, scoreRepo)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, uuid.New()), nil)

		_, err := svc.ScoreAndClose(context.Background(), sessionID, userID)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		scoreRepo.AssertNotCalled(t, "CreateAndCloseSession")
	})

	t.Run("transaction failure surfaces as upstream error", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		scoreRepo := new(MockScoreRepository)
		svc := NewScoreService(sessionRepo, scoreRepo)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scoreRepo.On("CreateAndCloseSession", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.ScoreAndClose(context.Background(), sessionID, userID)
		assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	})
}
