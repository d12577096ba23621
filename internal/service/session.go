package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/google/uuid"
)

// SessionService is the authoritative lifecycle for training sessions.
type SessionService struct {
	sessionRepo domain.SessionRepository
	messageRepo domain.MessageRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo domain.SessionRepository, messageRepo domain.MessageRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
	}
}

// Start creates a running session owned by the caller.
func (s *SessionService) Start(ctx context.Context, userID uuid.UUID, scenarioID int64) (*domain.Session, error) {
	if scenarioID <= 0 {
		return nil, domain.InvalidInput("scenario_id must be a positive integer")
	}

	session := &domain.Session{
		ID:         uuid.New(),
		UserID:     userID,
		ScenarioID: scenarioID,
		State:      domain.StateRunning,
		StartedAt:  time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, domain.UpstreamError("failed to create session", err)
	}
	return session, nil
}

// History returns the session's conversation log, oldest first. Ownership is
// enforced; the session may be running or closed.
func (s *SessionService) History(ctx context.Context, sessionID, callerID uuid.UUID) ([]domain.Message, error) {
	session, err := getOwned(ctx, s.sessionRepo, sessionID, callerID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListBySession(ctx, session.ID, historyFetchLimit)
	if err != nil {
		return nil, domain.UpstreamError("failed to fetch messages", err)
	}
	return messages, nil
}

// historyFetchLimit bounds how much of the log one request returns.
const historyFetchLimit = 200

// getOwned loads a session and enforces ownership. It is the first half of
// the mutation gate; state is not checked.
func getOwned(ctx context.Context, repo domain.SessionRepository, sessionID, callerID uuid.UUID) (*domain.Session, error) {
	session, err := repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRows) {
			return nil, domain.NotFoundError("session not found")
		}
		return nil, domain.UpstreamError("failed to load session", err)
	}

	if session.UserID != callerID {
		return nil, domain.Forbidden("session belongs to another user")
	}
	return session, nil
}

// loadForMutation is the single authorization gate before any action,
// scoring, or chat turn: the session must exist, belong to the caller, and
// still be running.
func loadForMutation(ctx context.Context, repo domain.SessionRepository, sessionID, callerID uuid.UUID) (*domain.Session, error) {
	session, err := getOwned(ctx, repo, sessionID, callerID)
	if err != nil {
		return nil, err
	}

	if session.State != domain.StateRunning {
		return nil, domain.Conflict(fmt.Sprintf("session is %s, not running", session.State))
	}
	return session, nil
}
