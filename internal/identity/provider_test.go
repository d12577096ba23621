package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderResolverResolve(t *testing.T) {
	userID := uuid.New()

	t.Run("resolves a valid credential", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
			assert.Equal(t, "anon-key", r.Header.Get("apikey"))
			fmt.Fprintf(w, `{"id": %q, "email": "agent@example.com"}`, userID)
		}))
		defer server.Close()

		resolver := NewProviderResolver(server.URL, "anon-key", time.Second)
		id, err := resolver.Resolve(context.Background(), "good-token")
		require.NoError(t, err)
		assert.Equal(t, userID, id.UserID)
		assert.Equal(t, "agent@example.com", id.Email)
	})

	t.Run("provider rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		resolver := NewProviderResolver(server.URL, "anon-key", time.Second)
		_, err := resolver.Resolve(context.Background(), "bad-token")
		assert.ErrorContains(t, err, "status 401")
	})

	t.Run("malformed provider response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": "not-a-uuid"}`)
		}))
		defer server.Close()

		resolver := NewProviderResolver(server.URL, "anon-key", time.Second)
		_, err := resolver.Resolve(context.Background(), "good-token")
		assert.ErrorContains(t, err, "invalid user id")
	})

	t.Run("unreachable provider", func(t *testing.T) {
		resolver := NewProviderResolver("http://127.0.0.1:1", "anon-key", 200*time.Millisecond)
		_, err := resolver.Resolve(context.Background(), "good-token")
		assert.Error(t, err)
	})
}
