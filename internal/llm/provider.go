package llm

import "context"

// Role tags a conversation turn for the completion service.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message in the prompt.
type Turn struct {
	Role    Role
	Content string
}

// Request contains completion parameters for one chat turn.
type Request struct {
	System      string
	Turns       []Turn
	MaxTokens   int
	Temperature float64
}

// Response contains the completion result.
type Response struct {
	Content    string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for completion-service providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete generates the simulated customer's reply
	Complete(ctx context.Context, req Request, model string) (*Response, error)
}
