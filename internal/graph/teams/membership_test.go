package teams

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
)

// membershipHandler serves user lookup, team lookup and the $ref member
// endpoints. Team "bad" fails its membership calls.
func membershipHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/users"):
			w.Write([]byte(`{"value":[{"id":"u1","mail":"sam@corp.test"}]}`))
		case strings.HasPrefix(r.URL.Path, "/teams/"):
			id := strings.TrimPrefix(r.URL.Path, "/teams/")
			w.Write([]byte(`{"id":"` + id + `","displayName":"Team ` + id + `"}`))
		case strings.Contains(r.URL.Path, "/groups/bad/"):
			http.Error(w, "forbidden", http.StatusForbidden)
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/members/$ref"):
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "unexpected request "+r.URL.Path, http.StatusTeapot)
		}
	})
}

func TestService_ChangeMembership(t *testing.T) {
	s := newTestService(t, Config{}, membershipHandler())

	result, err := s.ChangeMembership(context.Background(), MembershipChange{
		UserEmail: "sam@corp.test",
		Add:       []string{"t1", "bad"},
		Remove:    []string{"t2"},
	})

	require.NoError(t, err, "per-team failures never abort the batch")
	assert.Equal(t, []string{"t1"}, result.Added)
	assert.Equal(t, []string{"bad"}, result.AddFailed)
	assert.Equal(t, []string{"t2"}, result.Removed)
	assert.Empty(t, result.RemoveFailed)
}

func TestService_ChangeMembership_UnresolvableUser(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"value":[]}`))
	})
	s := newTestService(t, Config{}, handler)

	_, err := s.ChangeMembership(context.Background(), MembershipChange{
		UserEmail: "ghost@corp.test",
		Add:       []string{"t1"},
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
