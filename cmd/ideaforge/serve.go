package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ideaforge/internal/bootstrap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := bootstrap.NewContainer()
			c.MustInit()

			if err := c.Start(); err != nil {
				c.Shutdown()
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-quit:
				c.Log.Infow("Received shutdown signal", "signal", sig.String())
			case <-c.Context.Done():
				c.Log.Warn("Context cancelled, shutting down")
			}

			c.Shutdown()
			return nil
		},
	}
}
