package service

import (
	"context"
	"errors"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/evansarr33/sav-simulateur/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChatOptions bound the completion call for every turn.
type ChatOptions struct {
	HistoryLimit int
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// ChatService orchestrates one conversation turn: persist the agent's
// message, rebuild context, delegate to the completion service, persist the
// sanitized reply.
type ChatService struct {
	sessionRepo  domain.SessionRepository
	scenarioRepo domain.ScenarioRepository
	messageRepo  domain.MessageRepository
	llmRouter    *llm.Router
	opts         ChatOptions
}

// NewChatService creates a new chat service
func NewChatService(
	sessionRepo domain.SessionRepository,
	scenarioRepo domain.ScenarioRepository,
	messageRepo domain.MessageRepository,
	llmRouter *llm.Router,
	opts ChatOptions,
) *ChatService {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 24
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &ChatService{
		sessionRepo:  sessionRepo,
		scenarioRepo: scenarioRepo,
		messageRepo:  messageRepo,
		llmRouter:    llmRouter,
		opts:         opts,
	}
}

// Turn runs one agent/customer exchange. The agent's message is persisted
// before the completion call; if that call fails the message stays in the
// log (append-only, reflects what was attempted) and the caller gets an
// upstream error rather than a canned reply.
func (s *ChatService) Turn(ctx context.Context, sessionID, callerID uuid.UUID, agentMessage string) (*domain.Message, error) {
	if agentMessage == "" {
		return nil, domain.InvalidInput("agent_message is required")
	}

	session, err := loadForMutation(ctx, s.sessionRepo, sessionID, callerID)
	if err != nil {
		return nil, err
	}

	agentMsg := &domain.Message{
		ID:        uuid.New(),
		SessionID: session.ID,
		Author:    domain.AuthorAgent,
		Content:   agentMessage,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, agentMsg); err != nil {
		return nil, domain.UpstreamError("failed to record agent message", err)
	}

	scenario, err := s.scenarioRepo.Get(ctx, session.ScenarioID)
	if err != nil && !errors.Is(err, domain.ErrNoRows) {
		return nil, domain.UpstreamError("failed to load scenario", err)
	}

	history, err := s.messageRepo.ListBySession(ctx, session.ID, s.opts.HistoryLimit)
	if err != nil {
		return nil, domain.UpstreamError("failed to fetch history", err)
	}

	req := llm.Request{
		System:      llm.PersonaPreamble(scenario),
		Turns:       llm.ConversationTurns(history),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}

	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		return nil, domain.UpstreamError("no completion provider available", err)
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	resp, err := provider.Complete(llmCtx, req, "")
	if err != nil {
		log.Error().Err(err).
			Str("session_id", session.ID.String()).
			Str("provider", provider.Name()).
			Msg("completion call failed")
		return nil, domain.UpstreamError("completion service unavailable", err)
	}

	botMsg := &domain.Message{
		ID:        uuid.New(),
		SessionID: session.ID,
		Author:    domain.AuthorBot,
		Content:   llm.SanitizeReply(resp.Content),
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, botMsg); err != nil {
		return nil, domain.UpstreamError("failed to record bot message", err)
	}

	log.Debug().
		Str("session_id", session.ID.String()).
		Str("model", resp.Model).
		Int("tokens_used", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("chat turn completed")

	return botMsg, nil
}
