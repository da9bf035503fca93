package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/metrics"
	"github.com/vovakirdan/metro-minigames/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mini-game SSH server",
	Long: `Start an SSH server that lets riders connect and play mini-games.

Each SSH connection gets its own menu. Results are stored per server
under the SSH user name, and connected riders see each other's bonuses.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.metro/host_key

Examples:
  metro serve                           # Listen on :23234 with auto-generated key
  metro serve --ssh :2222               # Listen on port 2222
  metro serve --metrics :9090           # Also expose Prometheus metrics
  metro serve --db ./bonuses.db         # Use specific database

Riders can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default METRO_SSH_ADDR)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	base, err := config.Load(settings.ConfigPath)
	if err != nil {
		return err
	}
	preset, _ := config.ParsePreset(settings.Difficulty)
	logger := newLogger("metro-ssh")

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = firstNonEmpty(flagSSHAddr, settings.SSHAddr, cfg.Address)
	cfg.HostKeyPath = firstNonEmpty(flagHostKey, settings.HostKeyPath)
	cfg.DBPath = settings.DBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Tuning = base
	cfg.Preset = preset
	cfg.FPS = settings.FPS
	cfg.Logger = logger

	metricsAddr := firstNonEmpty(flagMetricsAddr, settings.MetricsAddr)
	if metricsAddr != "" {
		rec := metrics.NewRecorder()
		cfg.Metrics = rec

		ms := metrics.NewServer(metricsAddr, rec, logger)
		if err := ms.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := ms.Shutdown(ctx); err != nil {
				logger.Warn("metrics shutdown", "error", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting metro SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
