package llm

import (
	"strings"
	"testing"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPersonaPreamble(t *testing.T) {
	t.Run("full scenario", func(t *testing.T) {
		sc := &domain.Scenario{
			ID:         1,
			Title:      "Colis endommagé",
			Persona:    "Client pressé, déjà contacté le support deux fois",
			Mode:       "chat",
			Difficulty: "difficile",
		}
		preamble := PersonaPreamble(sc)

		assert.Contains(t, preamble, "Tu joues un CLIENT")
		assert.Contains(t, preamble, "Scénario: Colis endommagé")
		assert.Contains(t, preamble, "Profil client: Client pressé")
		assert.Contains(t, preamble, "Mode: chat")
		assert.Contains(t, preamble, "Difficulté: difficile")
	})

	t.Run("absent fields are omitted", func(t *testing.T) {
		sc := &domain.Scenario{ID: 2, Title: "Retard de livraison"}
		preamble := PersonaPreamble(sc)

		assert.Contains(t, preamble, "Scénario: Retard de livraison")
		assert.NotContains(t, preamble, "Profil client:")
		assert.NotContains(t, preamble, "Mode:")
		assert.NotContains(t, preamble, "Difficulté:")
	})

	t.Run("nil scenario keeps the base instructions", func(t *testing.T) {
		preamble := PersonaPreamble(nil)
		assert.Contains(t, preamble, "Tu joues un CLIENT")
		assert.NotContains(t, preamble, "Scénario:")
	})
}

func TestConversationTurns(t *testing.T) {
	sessionID := uuid.New()
	now := time.Now()
	history := []domain.Message{
		{ID: uuid.New(), SessionID: sessionID, Author: domain.AuthorAgent, Content: "Bonjour, comment puis-je vous aider ?", CreatedAt: now},
		{ID: uuid.New(), SessionID: sessionID, Author: domain.AuthorBot, Content: "Mon colis est arrivé cassé.", CreatedAt: now.Add(time.Second)},
		{ID: uuid.New(), SessionID: sessionID, Author: domain.AuthorAgent, Content: "Je suis désolé, je regarde votre dossier.", CreatedAt: now.Add(2 * time.Second)},
	}

	turns := ConversationTurns(history)

	assert.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.Equal(t, RoleUser, turns[2].Role)
	assert.Equal(t, "Mon colis est arrivé cassé.", turns[1].Content)
}

func TestSanitizeReply(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean reply untouched", "Je veux un remboursement.", "Je veux un remboursement."},
		{"strips markup tokens", "<|im_start|>Je veux un remboursement.<|im_end|>", "Je veux un remboursement."},
		{"strips inst markers", "[INST] D'accord, merci. [/INST]", "D'accord, merci."},
		{"strips assistant prefix", "assistant: Ce n'est pas acceptable.", "Ce n'est pas acceptable."},
		{"strips prefix case-insensitively", "Client: Où est mon colis ?", "Où est mon colis ?"},
		{"trims whitespace", "  \n Merci. \n ", "Merci."},
		{"only first prefix is stripped", "bot: user: bonjour", "user: bonjour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeReply(tt.input))
		})
	}
}

func TestSanitizeReplyNoMarkupLeaks(t *testing.T) {
	raw := "<s>system: assistant:</s> <|endoftext|>Réponse finale."
	out := SanitizeReply(raw)
	for _, tok := range markupTokens {
		assert.False(t, strings.Contains(out, tok), "token %q should be stripped", tok)
	}
}
