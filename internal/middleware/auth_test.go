package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplitter/internal/auth"
	"github.com/mmynk/billsplitter/internal/models"
)

type emptyMsg struct{}

// captureUser is a terminal UnaryFunc that records the identity it was called with.
func captureUser(got *string) connect.UnaryFunc {
	return func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		*got = GetUserID(ctx)
		return connect.NewResponse(&emptyMsg{}), nil
	}
}

func newRequest(authHeader string) *connect.Request[emptyMsg] {
	req := connect.NewRequest(&emptyMsg{})
	if authHeader != "" {
		req.Header().Set("Authorization", authHeader)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	revoked := auth.NewMemoryRevocationList()
	user := models.NewUser("alice", "alice@example.com", "", "hash")

	token, expiresAt, err := jwtManager.Generate(user)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
	}{
		{"missing header", "", connect.CodeUnauthenticated},
		{"not bearer", "Basic abc", connect.CodeUnauthenticated},
		{"bad token", "Bearer nope", connect.CodeUnauthenticated},
		{"valid", "Bearer " + token, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			_, err := RequireAuth(jwtManager, revoked)(captureUser(&got))(ctx, newRequest(tt.header))
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, user.ID, got)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
		})
	}

	t.Run("revoked token", func(t *testing.T) {
		claims, err := jwtManager.Validate(token)
		require.NoError(t, err)
		require.NoError(t, revoked.Revoke(ctx, claims.ID, expiresAt))

		var got string
		_, err = RequireAuth(jwtManager, revoked)(captureUser(&got))(ctx, newRequest("Bearer "+token))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
		assert.ErrorIs(t, err, auth.ErrRevokedToken)
	})
}

func TestOptionalAuth(t *testing.T) {
	ctx := context.Background()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	user := models.NewUser("alice", "alice@example.com", "", "hash")
	token, _, err := jwtManager.Generate(user)
	require.NoError(t, err)

	var got string
	_, err = OptionalAuth(jwtManager, nil)(captureUser(&got))(ctx, newRequest(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = OptionalAuth(jwtManager, nil)(captureUser(&got))(ctx, newRequest("Bearer garbage"))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = OptionalAuth(jwtManager, nil)(captureUser(&got))(ctx, newRequest("Bearer "+token))
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)
}

func TestGetToken(t *testing.T) {
	_, _, ok := GetToken(context.Background())
	assert.False(t, ok)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, expiresAt, err := jwtManager.Generate(models.NewUser("alice", "a@example.com", "", "hash"))
	require.NoError(t, err)
	claims, err := jwtManager.Validate(token)
	require.NoError(t, err)

	id, exp, ok := GetToken(WithClaims(context.Background(), claims))
	require.True(t, ok)
	assert.Equal(t, claims.ID, id)
	assert.WithinDuration(t, expiresAt, exp, time.Second)
}

func TestCORS(t *testing.T) {
	h := CORS("https://app.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
