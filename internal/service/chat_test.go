package service

import (
	"context"
	"testing"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/evansarr33/sav-simulateur/internal/llm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatFixture(provider *MockProvider) (*ChatService, *MockSessionRepository, *MockScenarioRepository, *MockMessageRepository) {
	sessionRepo := new(MockSessionRepository)
	scenarioRepo := new(MockScenarioRepository)
	messageRepo := new(MockMessageRepository)

	router := llm.NewRouter("mock")
	if provider != nil {
		provider.On("Name").Return("mock").Maybe()
		provider.On("IsConfigured").Return(true).Maybe()
		router.RegisterProvider(provider)
	}

	svc := NewChatService(sessionRepo, scenarioRepo, messageRepo, router, ChatOptions{
		HistoryLimit: 24,
		MaxTokens:    256,
		Temperature:  0.6,
		Timeout:      5 * time.Second,
	})
	return svc, sessionRepo, scenarioRepo, messageRepo
}

func TestChatServiceTurn(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	scenario := &domain.Scenario{ID: 1, Title: "Colis endommagé", Persona: "Client pressé"}

	t.Run("persists both sides of the exchange", func(t *testing.T) {
		provider := new(MockProvider)
		svc, sessionRepo, scenarioRepo, messageRepo := newChatFixture(provider)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scenarioRepo.On("Get", mock.Anything, int64(1)).Return(scenario, nil)

		var created []*domain.Message
		messageRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*domain.Message))
		}).Return(nil)
		messageRepo.On("ListBySession", mock.Anything, sessionID, 24).Return([]domain.Message{
			{Author: domain.AuthorAgent, Content: "Bonjour, que puis-je faire ?"},
		}, nil)

		provider.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
			return req.MaxTokens == 256 && req.Temperature == 0.6 && len(req.Turns) == 1
		}), "").Return(&llm.Response{Content: "assistant: Mon colis est arrivé cassé.", Model: "mock-model"}, nil)

		bot, err := svc.Turn(context.Background(), sessionID, userID, "Bonjour, que puis-je faire ?")
		require.NoError(t, err)

		assert.Equal(t, domain.AuthorBot, bot.Author)
		assert.Equal(t, "Mon colis est arrivé cassé.", bot.Content, "reply is sanitized before persisting")

		require.Len(t, created, 2)
		assert.Equal(t, domain.AuthorAgent, created[0].Author)
		assert.Equal(t, domain.AuthorBot, created[1].Author)
	})

	t.Run("persona preamble carries the scenario", func(t *testing.T) {
		provider := new(MockProvider)
		svc, sessionRepo, scenarioRepo, messageRepo := newChatFixture(provider)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scenarioRepo.On("Get", mock.Anything, int64(1)).Return(scenario, nil)
		messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		messageRepo.On("ListBySession", mock.Anything, sessionID, 24).Return([]domain.Message{}, nil)

		provider.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
			return assert.ObjectsAreEqual(llm.PersonaPreamble(scenario), req.System)
		}), "").Return(&llm.Response{Content: "D'accord."}, nil)

		_, err := svc.Turn(context.Background(), sessionID, userID, "Bonjour")
		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		svc, sessionRepo, _, messageRepo := newChatFixture(new(MockProvider))

		_, err := svc.Turn(context.Background(), sessionID, userID, "")
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
		sessionRepo.AssertNotCalled(t, "Get")
		messageRepo.AssertNotCalled(t, "Create")
	})

	t.Run("closed session gets conflict and no message is appended", func(t *testing.T) {
		svc, sessionRepo, _, messageRepo := newChatFixture(new(MockProvider))

		ended := time.Now()
		sessionRepo.On("Get", mock.Anything, sessionID).Return(&domain.Session{
			ID: sessionID, UserID: userID, State: domain.StateClosed, EndedAt: &ended,
		}, nil)

		_, err := svc.Turn(context.Background(), sessionID, userID, "Bonjour")
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		messageRepo.AssertNotCalled(t, "Create")
	})

	t.Run("completion failure keeps the agent message and reports upstream", func(t *testing.T) {
		provider := new(MockProvider)
		svc, sessionRepo, scenarioRepo, messageRepo := newChatFixture(provider)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scenarioRepo.On("Get", mock.Anything, int64(1)).Return(scenario, nil)
		messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Author == domain.AuthorAgent
		})).Return(nil).Once()
		messageRepo.On("ListBySession", mock.Anything, sessionID, 24).Return([]domain.Message{}, nil)

		provider.On("Complete", mock.Anything, mock.Anything, "").Return(nil, assert.AnError)

		_, err := svc.Turn(context.Background(), sessionID, userID, "Bonjour")
		assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
		messageRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("missing scenario row does not block the turn", func(t *testing.T) {
		provider := new(MockProvider)
		svc, sessionRepo, scenarioRepo, messageRepo := newChatFixture(provider)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scenarioRepo.On("Get", mock.Anything, int64(1)).Return(nil, domain.ErrNoRows)
		messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		messageRepo.On("ListBySession", mock.Anything, sessionID, 24).Return([]domain.Message{}, nil)

		provider.On("Complete", mock.Anything, mock.Anything, "").Return(&llm.Response{Content: "Bonjour."}, nil)

		bot, err := svc.Turn(context.Background(), sessionID, userID, "Bonjour")
		require.NoError(t, err)
		assert.Equal(t, "Bonjour.", bot.Content)
	})

	t.Run("no provider configured", func(t *testing.T) {
		svc, sessionRepo, scenarioRepo, messageRepo := newChatFixture(nil)

		sessionRepo.On("Get", mock.Anything, sessionID).Return(runningSession(sessionID, userID), nil)
		scenarioRepo.On("Get", mock.Anything, int64(1)).Return(scenario, nil)
		messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		messageRepo.On("ListBySession", mock.Anything, sessionID, 24).Return([]domain.Message{}, nil)

		_, err := svc.Turn(context.Background(), sessionID, userID, "Bonjour")
		assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	})
}
