package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
	// TokenKey is the context key for the validated token claims.
	TokenKey contextKey = "token"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetUsername extracts the username from the context.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// GetToken returns the id and expiry of the token that authenticated the request.
func GetToken(ctx context.Context) (tokenID string, expiresAt time.Time, ok bool) {
	claims, ok := ctx.Value(TokenKey).(*auth.Claims)
	if !ok || claims == nil {
		return "", time.Time{}, false
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.ID, expiresAt, true
}

// WithClaims returns ctx carrying the user identity from claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return context.WithValue(ctx, TokenKey, claims)
}

// bearerToken returns the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// verify validates the token and checks it against the revocation list.
func verify(ctx context.Context, jwtManager *auth.JWTManager, revoked auth.RevocationList, token string) (*auth.Claims, error) {
	claims, err := jwtManager.Validate(token)
	if err != nil {
		return nil, err
	}
	if revoked != nil {
		isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Fail closed if the list cannot be consulted.
			slog.Error("Failed to check token revocation", "error", err)
			return nil, auth.ErrInvalidToken
		}
		if isRevoked {
			return nil, auth.ErrRevokedToken
		}
	}
	return claims, nil
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, rejects
// revoked tokens, and adds the user identity to the request context.
func RequireAuth(jwtManager *auth.JWTManager, revoked auth.RevocationList) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := verify(ctx, jwtManager, revoked, token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithClaims(ctx, claims), req)
		}
	}
}

// OptionalAuth returns a middleware that validates JWT tokens if present, but allows
// requests without authentication. Invalid or revoked tokens are ignored.
func OptionalAuth(jwtManager *auth.JWTManager, revoked auth.RevocationList) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, ok := bearerToken(req.Header().Get("Authorization")); ok {
				if claims, err := verify(ctx, jwtManager, revoked, token); err == nil {
					ctx = WithClaims(ctx, claims)
				}
			}
			return next(ctx, req)
		}
	}
}
