package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/internal/logging"
	"github.com/airyra/trello/pkg/trello"
)

// configError marks errors caused by missing or invalid configuration.
type configError struct {
	err error
}

func (e *configError) Error() string {
	return "configuration: " + e.err.Error()
}

func (e *configError) Unwrap() error {
	return e.err
}

// usageError marks errors in the command line itself.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// loadConfig resolves the configuration from files, environment and flags.
func loadConfig() (*config.ResolvedConfig, error) {
	cfg, err := config.Resolve(config.Overrides{
		APIKey:  apiKey,
		Token:   apiToken,
		BaseURL: baseURL,
		Timeout: timeout,
	})
	if err != nil {
		return nil, &configError{err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &configError{err}
	}
	return cfg, nil
}

// newLogger returns the CLI logger. Only warnings are shown unless --verbose is set.
func newLogger() (*zap.Logger, error) {
	level := ""
	if verbose {
		level = "debug"
	}
	return logging.New(level, "warn")
}

// newClient builds an API client for cfg whose requests are logged at debug level.
func newClient(cfg *config.ResolvedConfig, logger *zap.Logger) (*trello.Client, error) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &loggingTransport{
			next:   http.DefaultTransport.(*http.Transport).Clone(),
			logger: logger,
		},
	}
	return trello.NewClient(cfg.APIKey,
		trello.WithAccessToken(cfg.Token),
		trello.WithAPISecret(cfg.Secret),
		trello.WithBaseURL(cfg.BaseURL),
		trello.WithHTTPClient(httpClient),
	)
}

// withClient resolves the configuration, builds a client and runs fn with it.
func withClient(fn func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := newClient(cfg, logger)
	if err != nil {
		return &configError{err}
	}
	defer c.Close()

	return fn(context.Background(), c, cfg)
}

// loggingTransport logs each request's method, path, status and duration.
// The query string is left out since it carries the key and token.
type loggingTransport struct {
	next   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return nil, err
	}
	t.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func (t *loggingTransport) CloseIdleConnections() {
	if c, ok := t.next.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}

// idOrDefault returns the id given on the command line, or fallback from
// trello.toml. what names the entity in the error message.
func idOrDefault(args []string, fallback, what string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", &usageError{fmt.Sprintf("%s id is required (pass it or set %s in %s)", what, what, config.ProjectConfigFileName)}
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	var useErr *usageError
	if errors.As(err, &useErr) {
		return ExitInvalidArgs
	}

	switch {
	case trello.IsArgumentError(err):
		return ExitInvalidArgs
	case trello.IsTransportError(err):
		return ExitTransportError
	case trello.IsAPIError(err):
		switch trello.StatusCode(err) {
		case http.StatusNotFound:
			return ExitNotFound
		case http.StatusUnauthorized:
			return ExitUnauthorized
		default:
			return ExitAPIError
		}
	case trello.IsDecodeError(err):
		return ExitAPIError
	}

	return ExitGeneralError
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}
