package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/billsplitter/internal/auth"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/middleware"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage/sqlstore"
	"github.com/mmynk/billsplitter/pkg/api"
	"github.com/mmynk/billsplitter/pkg/api/apiconnect"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor sets the user ID from the test header, or defaultUserID.
func testAuthInterceptor(defaultUserID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := defaultUserID
			if h := req.Header().Get(testUserHeader); h != "" {
				userID = h
			}
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	store   *sqlstore.Store
	user    *models.User
	metrics *metrics.Metrics
	jwt     *auth.JWTManager

	auth   apiconnect.AuthServiceClient
	people apiconnect.PeopleServiceClient
	bills  apiconnect.BillServiceClient
}

// setupTestServer starts every service against a temporary SQLite database.
// People and bill calls run as a seeded user; auth calls go through real JWT middleware.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := sqlstore.NewSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	user := models.NewUser("alice", "alice@example.com", "Alice", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	m := metrics.New(prometheus.NewRegistry())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	revoked := auth.NewMemoryRevocationList()
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	testAuth := connect.WithInterceptors(testAuthInterceptor(user.ID))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, store, jwtManager, revoked, slog.Default()),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager, revoked)),
	))
	mux.Handle(apiconnect.NewPeopleServiceHandler(NewPeopleService(store), testAuth))
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, m), testAuth))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		store:   store,
		user:    user,
		metrics: m,
		jwt:     jwtManager,
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		people:  apiconnect.NewPeopleServiceClient(http.DefaultClient, server.URL),
		bills:   apiconnect.NewBillServiceClient(http.DefaultClient, server.URL),
	}
}

// createPeople adds people to the default user's address book and returns their ids.
func (e *testEnv) createPeople(t *testing.T, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		resp, err := e.people.CreatePerson(context.Background(), connect.NewRequest(&api.CreatePersonRequest{Name: name}))
		require.NoError(t, err)
		ids[i] = resp.Msg.Person.ID
	}
	return ids
}

// asUser returns a request that runs as userID instead of the default user.
func asUser[T any](msg *T, userID string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr), "expected connect error, got %v", err)
	assert.Equal(t, code, connectErr.Code(), "message: %s", connectErr.Message())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
