package state

import (
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_Transitions(t *testing.T) {
	user := &models.User{ID: "u1", Email: "user@test.com", Token: "t1"}

	tests := []struct {
		name   string
		from   State
		action Action
		want   State
	}{
		{"login start clears error", State{Error: "old"}, LoginStart(), State{Status: Authenticating}},
		{"login success", State{Status: Authenticating}, LoginSuccess(user), State{Status: Authenticated, User: user}},
		{"login failure", State{Status: Authenticating}, LoginFailure("Invalid credentials"), State{Status: Unauthenticated, Error: "Invalid credentials"}},
		{"register start", State{}, RegisterStart(), State{Status: Authenticating}},
		{"register success without user", State{Status: Authenticating}, RegisterSuccess(nil), State{Status: Unauthenticated}},
		{"register success with user", State{Status: Authenticating}, RegisterSuccess(user), State{Status: Authenticated, User: user}},
		{"register failure", State{Status: Authenticating}, RegisterFailure("taken"), State{Status: Unauthenticated, Error: "taken"}},
		{"logout", State{Status: Authenticated, User: user, Error: "x"}, Logout(), State{Status: Unauthenticated}},
		{"clear error keeps user", State{Status: Authenticated, User: user, Error: "x"}, ClearError(), State{Status: Authenticated, User: user}},
		{"unknown action", State{Status: Authenticated, User: user}, Action{Type: 99}, State{Status: Authenticated, User: user}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.from, tt.action)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduce_DoesNotAliasActionUser(t *testing.T) {
	user := &models.User{ID: "u1", Token: "t1"}
	got := Reduce(State{}, LoginSuccess(user))

	user.Token = "mutated"
	require.NotNil(t, got.User)
	assert.Equal(t, "t1", got.User.Token)
}

// Every reachable state satisfies Authenticated <=> User != nil.
func TestReduce_AuthenticatedIffUser(t *testing.T) {
	user := &models.User{ID: "u1", Token: "t1"}
	actions := []Action{
		LoginStart(), LoginSuccess(user), LoginSuccess(nil), LoginFailure("e"),
		RegisterStart(), RegisterSuccess(user), RegisterSuccess(nil), RegisterFailure("e"),
		Logout(), ClearError(),
	}

	frontier := []State{{}}
	seen := map[string]bool{}
	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]

		key := s.Status.String() + "|" + s.Error
		if s.User != nil {
			key += "|user"
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		assert.Equal(t, s.Status == Authenticated, s.User != nil, "state %+v", s)
		assert.Equal(t, s.Status == Authenticated, s.IsAuthenticated())

		for _, a := range actions {
			frontier = append(frontier, Reduce(s, a))
		}
	}
	assert.NotEmpty(t, seen)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
