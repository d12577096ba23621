package llm

import (
	"fmt"
	"strings"

	"github.com/evansarr33/sav-simulateur/internal/domain"
)

// PersonaPreamble builds the system prompt that makes the model play the
// scenario's customer. Absent scenario fields are omitted rather than
// emitting empty labels.
func PersonaPreamble(sc *domain.Scenario) string {
	lines := []string{
		"Tu joues un CLIENT dans un entraînement SAV e-commerce.",
		"Sois poli, ferme, concret. Ne promets rien hors politique.",
		"Réponds court et clair.",
	}

	if sc != nil {
		if sc.Title != "" {
			lines = append(lines, fmt.Sprintf("Scénario: %s", sc.Title))
		}
		if sc.Persona != "" {
			lines = append(lines, fmt.Sprintf("Profil client: %s", sc.Persona))
		}
		if sc.Mode != "" {
			lines = append(lines, fmt.Sprintf("Mode: %s", sc.Mode))
		}
		if sc.Difficulty != "" {
			lines = append(lines, fmt.Sprintf("Difficulté: %s", sc.Difficulty))
		}
	}

	return strings.Join(lines, "\n")
}

// ConversationTurns maps stored session messages onto chat roles: the
// agent's messages become the user role, prior bot replies the assistant
// role. Input must be ordered oldest first.
func ConversationTurns(history []domain.Message) []Turn {
	turns := make([]Turn, 0, len(history))
	for _, m := range history {
		role := RoleUser
		if m.Author == domain.AuthorBot {
			role = RoleAssistant
		}
		turns = append(turns, Turn{Role: role, Content: m.Content})
	}
	return turns
}

// markupTokens are chat-template artifacts some models echo back verbatim.
var markupTokens = []string{
	"<|im_start|>",
	"<|im_end|>",
	"<|endoftext|>",
	"<s>",
	"</s>",
	"[INST]",
	"[/INST]",
}

// rolePrefixes are leading role labels stripped from replies.
var rolePrefixes = []string{
	"assistant:",
	"system:",
	"user:",
	"bot:",
	"client:",
}

// SanitizeReply strips residual role labels and chat-markup tokens from a
// raw completion before it is persisted or returned.
func SanitizeReply(s string) string {
	for _, tok := range markupTokens {
		s = strings.ReplaceAll(s, tok, "")
	}

	s = strings.TrimSpace(s)
	for _, prefix := range rolePrefixes {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}

	return s
}
