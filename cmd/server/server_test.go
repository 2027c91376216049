package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServerTimeouts(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig()
	cfg.Server.Port = 9090
	app := &application{config: cfg}

	srv := app.newHTTPServer(http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	t.Parallel()

	l, logs := logger.NewTestLogger()
	app := &application{config: newTestConfig(), logger: l}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.startHTTPServer(ctx, http.NotFoundHandler())
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, logs.String(), "Server shutdown completed")
}
