package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/handler"
	"go.uber.org/zap"
)

var (
	flagAddr     string
	flagPageSize int
	flagWindow   int
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default $PROTVIEW_ADDR or 0.0.0.0:8080)")
	cmd.Flags().IntVar(&flagPageSize, "page-size", 0, "records per browse page")
	cmd.Flags().IntVar(&flagWindow, "window", 0, "default rolling mean window (1-20)")
}

// applyServeFlags only looks at the server commands; export has its own --window.
func applyServeFlags(cmd *cobra.Command) {
	if cmd.HasParent() && cmd.Name() != "serve" {
		return
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = flagAddr
	}
	if flags.Changed("page-size") {
		cfg.PageSize = flagPageSize
	}
	if flags.Changed("window") {
		cfg.WindowSize = flagWindow
	}
}

func runServe(cmd *cobra.Command) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}

	app := handler.NewAppContext(ds, cfg.PageSize, cfg.WindowSize)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Start:", zap.String("Version", VERSION))
		logger.Info("Server starting", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server:", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
