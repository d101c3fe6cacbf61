package main

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pokerduel/pokerduel/cmd/pokerduel/shared"
	"github.com/pokerduel/pokerduel/internal/duel"
	"github.com/pokerduel/pokerduel/internal/engine"
	"github.com/pokerduel/pokerduel/internal/invite"
	"github.com/pokerduel/pokerduel/internal/metrics"
	"github.com/pokerduel/pokerduel/internal/notify"
	"github.com/pokerduel/pokerduel/internal/registry"
	"github.com/pokerduel/pokerduel/internal/server"
	"github.com/pokerduel/pokerduel/internal/store"
)

// ServerCmd runs the HTTP service.
type ServerCmd struct {
	Config string `kong:"default='pokerduel.hcl',help='Path to HCL configuration file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel, c.Debug)

	client, err := store.Connect(cfg.Redis.Address, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Webhook.URL != "" {
		notifier = notify.NewWebhook(cfg.Webhook.URL, logger)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	eng := engine.New(store.NewRedisStore(client), notifier, logger,
		engine.WithRules(duel.Rules{
			StartingChips: cfg.Game.StartingChips,
			MinBet:        cfg.Game.MinBet,
			MaxHands:      cfg.Game.MaxHands,
		}),
		engine.WithTTL(cfg.StateTTL()),
		engine.WithMetrics(metrics.New(promReg)),
	)

	directory := registry.New(client, quartz.NewReal(), logger)
	invites := invite.New(client)
	srv := server.NewServer(eng, directory, invites, promReg, logger)

	logger.Info("Starting pokerduel server",
		"addr", cfg.ListenAddr(),
		"redis", cfg.Redis.Address,
		"starting_chips", cfg.Game.StartingChips,
		"min_bet", cfg.Game.MinBet,
		"max_hands", cfg.Game.MaxHands,
		"state_ttl", cfg.StateTTL(),
		"webhook", cfg.Webhook.URL != "",
	)

	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.ListenAddr()); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
