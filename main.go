package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/store"
)

const releaseVersion = "1.0.0"

// errNoSave is returned by export when the session has nothing saved.
var errNoSave = errors.New("no saved game")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	if err := newCmd(cfg).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("hangman exited")
		stop()
		os.Exit(1)
	}
}

func setupLogging(cfg *Config) error {
	lvl, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.logLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if cfg.pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func serve(ctx context.Context, cfg *Config) error {
	blob, err := store.Open(cfg.store, cfg.db)
	if err != nil {
		return err
	}
	defer blob.Close()

	if cfg.sessionSecret == "" {
		log.Warn().Msg("no session secret configured, using development default")
	}
	srv, err := httpserver.New(ctx, blob, httpserver.Options{
		ClientOrigin:  cfg.clientOrigin,
		SessionSecret: cfg.sessionSecret,
		SecureCookies: cfg.secureCookies,
	})
	if err != nil {
		return err
	}

	log.Info().Str("addr", cfg.addr()).Str("store", cfg.store).Msg("starting hangman")
	return srv.Start(ctx, cfg.addr())
}

func export(ctx context.Context, cfg *Config, w io.Writer) error {
	blob, err := store.Open(cfg.store, cfg.db)
	if err != nil {
		return err
	}
	defer blob.Close()

	st, ok, err := store.NewSaves(blob).Load(ctx, cfg.session)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w for session %q", errNoSave, cfg.session)
	}
	_, err = fmt.Fprintln(w, game.Export(st))
	return err
}

func printAlphabet(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(game.Glyphs(), " "))
	return err
}
