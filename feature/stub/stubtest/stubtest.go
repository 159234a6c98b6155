// Package stubtest starts the stub catalog server for tests.
package stubtest

import (
	"net/http/httptest"
	"testing"

	"atlan-sdk/core/client"
	"atlan-sdk/core/server"
	"atlan-sdk/feature/stub"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Token is the API token accepted by servers started with Start.
const Token = "stub-token"

// Start serves a fresh store over HTTP until the test ends.
func Start(t testing.TB, opts ...stub.StoreOption) (*httptest.Server, *stub.Store) {
	t.Helper()
	store := stub.NewStore(opts...)
	app, err := stub.NewApp(store, server.Config{ApiKey: Token, MaxPageSize: 1000}, zap.NewNop())
	require.NoError(t, err)
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv, store
}

// NewClient returns an API client for srv with retries disabled.
func NewClient(t testing.TB, srv *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(client.Config{
		BaseURL:         srv.URL,
		APIToken:        Token,
		TimeoutSeconds:  5,
		MaxRetries:      0,
		RetryWaitMillis: 1,
		BreakerFailures: 100,
		UserAgent:       "atlan-sdk-test",
	})
	require.NoError(t, err)
	return c
}
