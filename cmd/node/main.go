// Command node runs a single Chord ring participant: it loads configuration,
// forms or joins a ring, starts the inbound dispatch surface and the three
// maintenance loops, and waits for SIGINT/SIGTERM to shut down cleanly.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris-alexander-pop/chord-ring/internal/chord"
	"github.com/chris-alexander-pop/chord-ring/internal/config"
	"github.com/chris-alexander-pop/chord-ring/internal/logger"
	"github.com/chris-alexander-pop/chord-ring/internal/transport/httprpc"
)

// rootConfig composes the node's ring configuration with its ambient
// concerns (logging, inbound listener), the way the teacher's worker-service
// template composes its own Config around pkg/logger.Config.
type rootConfig struct {
	Chord  chord.Config   `env-prefix:""`
	Logger logger.Config  `env-prefix:""`
	Server httprpc.Config `env-prefix:""`
}

func main() {
	var cfg rootConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := config.ValidateRingConfig(cfg.Chord); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	slog := logger.Init(cfg.Logger)
	nodeLog := logger.NodeLogger(slog, cfg.Chord.Addr())

	client := httprpc.NewClient(&http.Client{Timeout: cfg.Chord.CallTimeout + time.Second})
	n := chord.New(cfg.Chord, client, nodeLog)

	if cfg.Chord.Bootstrap == "" {
		nodeLog.Info("forming new ring", "self", n.Self().Address)
		n.CreateRing()
	} else {
		nodeLog.Info("joining ring", "self", n.Self().Address, "bootstrap", cfg.Chord.Bootstrap)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Chord.CallTimeout)
		err := n.JoinRing(ctx, cfg.Chord.Bootstrap)
		cancel()
		if err != nil {
			nodeLog.Error("failed to join ring", "error", err)
			os.Exit(1)
		}
	}

	srv := httprpc.NewServer(cfg.Server, n, nodeLog)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			nodeLog.Error("inbound dispatch surface stopped unexpectedly", "error", err)
		}
	}()

	n.Start(context.Background())
	nodeLog.Info("node started", "self", n.Self().Address, "id", n.Self().ID)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nodeLog.Info("node shutting down")
	n.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		nodeLog.Error("inbound dispatch surface did not shut down cleanly", "error", err)
	}
}
