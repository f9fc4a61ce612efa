package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pesapots/backend/internal/backend"
	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/pesapots/backend/internal/events"
	"github.com/pesapots/backend/internal/router"
	"github.com/pesapots/backend/internal/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// shutdownTimeout is how long running requests may take after a shutdown signal.
const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the API server. The cached session is restored and all collections
are fetched from the backend before the server accepts requests. A failing
backend is logged and does not prevent the start.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c := a.config

	cache, err := a.openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	client, err := backend.New(c.Backend.URL, c.Backend.AccessToken, c.Backend.Timeout)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.Noop{}
	if c.Events.AMQPURL != "" {
		amqp, err := events.NewAMQP(c.Events.AMQPURL, c.Events.Exchange)
		if err != nil {
			return fmt.Errorf("could not connect to the message broker: %w", err)
		}
		publisher = amqp
	}
	defer publisher.Close()

	svc := session.New(session.Options{
		Backend:   client,
		Store:     cache,
		Publisher: publisher,
		CacheKey:  c.Cache.Key,
	})

	if err := svc.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore the cached session")
	}

	results, err := svc.RefreshAll(ctx)
	for _, r := range results {
		log.Info().Str("collection", r.Collection).Int("received", r.Received).Int("dropped", len(r.Dropped)).Bool("applied", r.Applied).Msg("refresh")
	}
	if err != nil {
		log.Error().Err(err).Msg("initial refresh failed, serving the cached session")
	}

	url, err := c.Server.URL()
	if err != nil {
		return err
	}

	r, teardown, err := router.Config(url, router.Options{
		AllowOrigins: c.Server.CorsAllowOrigins,
		EnablePprof:  c.Server.EnablePprof,
	})
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(v1.Controller{Session: svc}, r.Group("/"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("backend startup complete")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
