package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/totegamma/twitton/internal/config"
	"github.com/totegamma/twitton/internal/domain"
	"github.com/totegamma/twitton/internal/infra/providers"
	"github.com/totegamma/twitton/internal/infra/telemetry"
	"github.com/totegamma/twitton/internal/present/rest"
	"github.com/totegamma/twitton/internal/present/rest/middleware"
	"github.com/totegamma/twitton/internal/usecase"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.LookupEnv)
	stop()
	if err != nil {
		slog.Error("twitton exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run serves until ctx is done. Configuration errors are returned before any listener is opened.
func run(ctx context.Context, args []string, lookup func(string) (string, bool)) error {
	flags := pflag.NewFlagSet("twitton", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", envOr(lookup, config.EnvConfigPath, "config.yaml"), "path to the server config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: conf.Server.SlogLevel(),
	})))

	identity, err := config.LoadIdentity(lookup)
	if err != nil {
		return err
	}

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.SetupTraceProvider(ctx, conf.Server.TraceEndpoint, "twitton", version)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("failed to shutdown tracer", slog.String("error", err.Error()))
			}
		}()
	}

	var metrics *middleware.Metrics
	registry := prometheus.NewRegistry()
	if conf.Server.EnableMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = middleware.NewMetrics(registry)
	}

	var onAccept func(domain.InboxKind)
	if metrics != nil {
		onAccept = metrics.InboxAccepted
	}

	documentCache := providers.NewDocumentCache(conf.Server)
	identityRepo := providers.NewIdentityRepository(identity)

	webfingerUC := usecase.NewWebfingerUsecase(identityRepo, documentCache)
	actorUC := usecase.NewActorUsecase(identityRepo, documentCache)
	inboxUC := usecase.NewInboxUsecase(onAccept)

	handler := rest.NewHandler(conf.Server, webfingerUC, actorUC, inboxUC)
	e := rest.NewServer(conf.Server, handler, metrics)
	if metrics != nil {
		e.GET("/metrics", metrics.Handler(registry))
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("addr", conf.Server.BindAddr),
			slog.String("handle", identity.Handle),
			slog.String("version", version),
		)
		if err := e.Start(conf.Server.BindAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	return serveErr
}

func envOr(lookup func(string) (string, bool), key, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}
