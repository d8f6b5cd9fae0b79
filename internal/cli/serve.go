package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/llm"
	"github.com/sant0-9/todoai/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo and AI help JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host, _ = cmd.Flags().GetString("host")
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}

			gin.SetMode(gin.ReleaseMode)
			log := setupLogger(cmd, os.Stderr)

			provider, err := llm.NewProvider(cfg)
			if err != nil {
				log.Error("Failed to create AI provider", "error", err)
				return err
			}

			pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			if err := llm.WaitReady(pingCtx, provider, 2, 500*time.Millisecond); err != nil {
				log.Warn("AI backend not reachable yet; AI help will fail until it is", "provider", provider.Name(), "error", err)
			}
			cancel()

			store, err := openStore(cfg)
			if err != nil {
				log.Error("Failed to open todo store", "error", err)
				return err
			}
			log.Debug("Todo store opened", "path", store.Path())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, assist.NewHelper(provider, cfg.Model), store, log)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("host", "127.0.0.1", "Host to bind the server to")
	cmd.Flags().Int("port", 3000, "Port to run the server on")

	return cmd
}
