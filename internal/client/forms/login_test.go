package forms

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow_RequiresFields(t *testing.T) {
	svc := &fakeAuth{}
	f := NewLoginFlow(svc)
	f.Username = "   "

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, svc.calls)
	require.Contains(t, f.Errors, "username")
	require.Contains(t, f.Errors, "password")
	assert.Equal(t, MsgIdentifierRequired, f.Errors["username"].Error())
	assert.Equal(t, MsgPasswordRequired, f.Errors["password"].Error())
}

func TestLoginFlow_TrimsUsernameAndSubmits(t *testing.T) {
	svc := &fakeAuth{}
	f := NewLoginFlow(svc)
	f.Username = "  user@test.com "
	f.Password = "Secret123"

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, []string{"login:user@test.com"}, svc.calls)
	assert.Nil(t, f.Errors)
	assert.False(t, f.Loading)
	assert.Equal(t, 1, svc.clearErrors)
}

func TestLoginFlow_ServerError(t *testing.T) {
	svc := &fakeAuth{loginErr: &client.RequestError{Op: client.OpLogin, Status: 401, Message: "Invalid credentials"}}
	f := NewLoginFlow(svc)
	f.Username = "user@test.com"
	f.Password = "bad"

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", f.Error)
	assert.False(t, f.Loading)
}
