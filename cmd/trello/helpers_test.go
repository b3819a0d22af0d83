package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

// apiError returns the error the client reports for a response with status.
func apiError(t *testing.T, status int) error {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("nope"))
	}))
	defer server.Close()

	c, err := trello.NewClient("abc", trello.WithBaseURL(server.URL+"/1"))
	require.NoError(t, err)
	_, err = c.GetBoard(context.Background(), "123")
	require.Error(t, err)
	return err
}

func TestMapErrorToExitCode(t *testing.T) {
	c, err := trello.NewClient("abc", trello.WithBaseURL("http://127.0.0.1:1/1"))
	require.NoError(t, err)
	_, transportErr := c.GetBoard(context.Background(), "123")

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitSuccess},
		{name: "generic error", err: errors.New("something went wrong"), expected: ExitGeneralError},
		{name: "config error", err: &configError{errors.New("bad toml")}, expected: ExitConfigError},
		{name: "wrapped config error", err: fmt.Errorf("load: %w", &configError{errors.New("x")}), expected: ExitConfigError},
		{name: "usage error", err: &usageError{"board id is required"}, expected: ExitInvalidArgs},
		{name: "argument error", err: trello.ErrNoID, expected: ExitInvalidArgs},
		{name: "not found", err: apiError(t, http.StatusNotFound), expected: ExitNotFound},
		{name: "unauthorized", err: apiError(t, http.StatusUnauthorized), expected: ExitUnauthorized},
		{name: "server error", err: apiError(t, http.StatusInternalServerError), expected: ExitAPIError},
		{name: "transport error", err: transportErr, expected: ExitTransportError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapErrorToExitCode(tt.err))
		})
	}
}

func TestIDOrDefault(t *testing.T) {
	id, err := idOrDefault([]string{"abc"}, "fallback", "board")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	id, err = idOrDefault(nil, "fallback", "board")
	require.NoError(t, err)
	assert.Equal(t, "fallback", id)

	_, err = idOrDefault(nil, "", "board")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err))
	assert.Contains(t, err.Error(), "trello.toml")
}

func TestLoggingTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"123"}`))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c, err := newClient(&config.ResolvedConfig{
		APIKey:  "secret-key",
		Token:   "secret-token",
		BaseURL: server.URL + "/1",
	}, zap.New(core))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetBoard(context.Background(), "123")
	require.NoError(t, err)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/1/boards/123", fields["path"])
	assert.Equal(t, int64(200), fields["status"])
	for _, v := range fields {
		assert.NotContains(t, fmt.Sprint(v), "secret", "credentials must not be logged")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.ConfigPathEnv, "")
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvBaseURL, "")
	originalWd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(originalWd) })

	saved := apiKey
	defer func() { apiKey = saved }()

	apiKey = ""
	_, err := loadConfig()
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, mapErrorToExitCode(err))

	apiKey = "abc"
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
}
