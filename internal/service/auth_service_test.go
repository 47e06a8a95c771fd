package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplitter/pkg/api"
)

func withBearer[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, "bob", reg.Msg.User.Username)
	assert.NotEmpty(t, reg.Msg.Token)
	assert.False(t, reg.Msg.ExpiresAt.IsZero())

	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Username: "bob",
		Password: "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.User.ID, login.Msg.User.ID)

	claims, err := env.jwt.Validate(login.Msg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.User.ID, claims.UserID)

	me, err := env.auth.GetCurrentUser(ctx, withBearer(&api.GetCurrentUserRequest{}, login.Msg.Token))
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", me.Msg.User.Email)
}

func TestAuthService_RegisterRejected(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *api.RegisterRequest
		code connect.Code
	}{
		{"duplicate username", &api.RegisterRequest{Username: "alice", Email: "a2@example.com", Password: "password123"}, connect.CodeAlreadyExists},
		{"short username", &api.RegisterRequest{Username: "ab", Email: "ab@example.com", Password: "password123"}, connect.CodeInvalidArgument},
		{"bad email", &api.RegisterRequest{Username: "carol", Email: "not-an-email", Password: "password123"}, connect.CodeInvalidArgument},
		{"weak password", &api.RegisterRequest{Username: "dave", Email: "dave@example.com", Password: "short"}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, connect.NewRequest(tt.req))
			requireCode(t, err, tt.code)
		})
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123",
	}))
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "bob", Password: "wrong-password"}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "nobody", Password: "password123"}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "bob"}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestAuthService_Logout(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123",
	}))
	require.NoError(t, err)
	token := reg.Msg.Token

	_, err = env.auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Logout(ctx, withBearer(&api.LogoutRequest{}, token))
	require.NoError(t, err)

	// The revoked token no longer identifies anyone.
	_, err = env.auth.GetCurrentUser(ctx, withBearer(&api.GetCurrentUserRequest{}, token))
	requireCode(t, err, connect.CodeUnauthenticated)
}
