package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch-console/internal/config"
	"dispatch-console/internal/console"
	httphandler "dispatch-console/internal/http"
	"dispatch-console/internal/http/middleware"
	"dispatch-console/internal/logger"
	"dispatch-console/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	// The gateway polls with its own dispatcher account; operators still
	// authenticate with their own tokens on every console request.
	sess, _, err := client.Login(ctx, cfg.Upstream.Login, cfg.Upstream.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to log in to dispatch api")
	}

	monitor := console.NewMonitor(client, log)
	stopPolling := monitor.Run(ctx, sess, cfg.Poll.OrdersInterval, cfg.Poll.DriversInterval)
	defer stopPolling()

	handler := httphandler.NewHandler(monitor, client, log)
	router := httphandler.NewRouter(handler, middleware.Auth(), middleware.RequireDispatch(), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Info().Str("addr", addr).Msg("starting dispatch console")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	stopPolling()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
