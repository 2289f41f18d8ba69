package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amonks/agency/api"
	"github.com/amonks/agency/board"
	"github.com/amonks/agency/internal/config"
	"github.com/amonks/agency/internal/credentials"
	"github.com/amonks/agency/internal/localstore"
	"github.com/amonks/agency/internal/logging"
	"github.com/amonks/agency/internal/paths"
)

// app bundles what every command needs: configuration, the log, the local
// store and a backend client authenticated from it.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   *localstore.Store
	client  *api.Client
	closers []io.Closer
}

func openApp() (*app, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	stateDir, err := cfg.StateDir()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	logger, logCloser, err := logging.Open(stateDir, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	a.closers = append(a.closers, logCloser)

	port, err := localstore.Open(cfg.Storage.Backend, stateDir, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if closer, ok := port.(io.Closer); ok {
		a.closers = append(a.closers, closer)
	}
	a.store = localstore.New(port, logger)

	timeout, err := cfg.Timeout()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = api.NewClient(cfg.BaseURL(),
		api.WithTimeout(timeout),
		api.WithToken(credentials.TokenSource(a.store)),
		api.WithUnauthorizedHook(a.expireSession),
		api.WithLogger(logger),
	)
	return a, nil
}

// expireSession drops the stored token after the backend rejected it.
func (a *app) expireSession() {
	if err := credentials.Clear(a.store); err != nil {
		a.logger.Warn().Err(err).Msg("clear expired credentials")
		return
	}
	a.logger.Info().Msg("backend rejected token, credentials cleared")
}

// Close releases the store and the log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

// openBoard requires credentials and loads the task, user and project lists.
func (a *app) openBoard(ctx context.Context) (*board.Board, error) {
	creds, err := credentials.Require(a.store)
	if err != nil {
		return nil, withExitCode(authExitCode, err)
	}
	b := board.New(a.client, creds.Viewer(), board.WithLogger(a.logger))
	b.Load(ctx)
	return b, nil
}

// wrapAuth gives unauthorized backend errors the auth exit code.
func wrapAuth(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return withExitCode(authExitCode, fmt.Errorf("%w (credentials cleared, run `ag login`)", err))
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
