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

func TestMember_Role(t *testing.T) {
	assert.Equal(t, "owner", Member{Roles: []string{"owner", "member"}}.Role())
	assert.Equal(t, "unknown", Member{}.Role())
}

func TestService_TeamByName(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("$filter"), "displayName eq 'Platform'")
		w.Write([]byte(`{"value":[{"id":"t1","displayName":"Platform"}]}`))
	})
	s := newTestService(t, Config{}, handler)

	team, err := s.TeamByName(context.Background(), "Platform")

	require.NoError(t, err)
	assert.Equal(t, "t1", team.ID)
}

func TestService_TeamByName_EscapesQuotes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("$filter"), "O''Brien")
		w.Write([]byte(`{"value":[{"id":"t1","displayName":"O'Brien"}]}`))
	})
	s := newTestService(t, Config{}, handler)

	_, err := s.TeamByName(context.Background(), "O'Brien")

	assert.NoError(t, err)
}

func TestService_TeamByName_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"value":[]}`))
	})
	s := newTestService(t, Config{}, handler)

	_, err := s.TeamByName(context.Background(), "Ghost")

	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestService_TeamByID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/teams/t1"))
		w.Write([]byte(`{"id":"t1","displayName":"Platform","webUrl":"https://teams.test/t1"}`))
	})
	s := newTestService(t, Config{}, handler)

	team, err := s.TeamByID(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "Platform", team.DisplayName)
	assert.Equal(t, "https://teams.test/t1", team.WebURL)
}

func TestService_TeamByID_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	s := newTestService(t, Config{}, handler)

	_, err := s.TeamByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestService_TeamByID_EmptyID(t *testing.T) {
	s := NewService(nil, Config{})

	_, err := s.TeamByID(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrMissingTeam)
}

func TestService_UserTeams(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "joinedTeams"):
			assert.Contains(t, r.URL.Path, "/users/u1/joinedTeams")
			w.Write([]byte(`{"value":[{"id":"t1","displayName":"Platform"},{"id":"t2","displayName":"Support"}]}`))
		default:
			w.Write([]byte(`{"value":[{"id":"u1","mail":"sam@corp.test"}]}`))
		}
	})
	s := newTestService(t, Config{}, handler)

	joined, err := s.UserTeams(context.Background(), "sam@corp.test")

	require.NoError(t, err)
	require.Len(t, joined, 2)
	assert.Equal(t, "Support", joined[1].DisplayName)
}

func TestService_TeamMembers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"value":[{"email":"a@corp.test","displayName":"A","roles":["owner"]},{"email":"b@corp.test","displayName":"B"}]}`))
	})
	s := newTestService(t, Config{}, handler)

	members, err := s.TeamMembers(context.Background(), "t1")

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "owner", members[0].Role())
	assert.Equal(t, "unknown", members[1].Role())
}
