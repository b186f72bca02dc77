package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveSkipIndex bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long:  "Indexes the content dir (unless --skip-index) and serves the site with the same paths the static build writes.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides addr in config)")
	serveCmd.Flags().BoolVar(&serveSkipIndex, "skip-index", false, "Serve the existing post index")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()
	if serveAddr != "" {
		app.Config.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !serveSkipIndex {
		if _, err := app.Index(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
