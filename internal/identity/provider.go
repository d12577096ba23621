package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ProviderResolver asks the external identity provider to resolve the
// credential on every request. Stateless; the bounded client timeout keeps a
// stalled provider from hanging handlers.
type ProviderResolver struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewProviderResolver creates a resolver against the provider's user
// endpoint.
func NewProviderResolver(baseURL, apiKey string, timeout time.Duration) *ProviderResolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ProviderResolver{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type providerUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Resolve implements Resolver.
func (r *ProviderResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id from provider: %w", err)
	}

	return &Identity{UserID: userID, Email: user.Email}, nil
}
