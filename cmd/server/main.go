package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/wschat/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "wschat-server",
	Short: "Development relay for the wschat client",
	RunE:  runServer,
}

var (
	flagAddr     string
	flagLogLevel string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagAddr, "addr", ":3000", "HTTP service address")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute relay command")
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(log.Logger)
	roomDone := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(roomDone)
	}()

	httpSrv := &http.Server{
		Addr:              flagAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("[relay] listening on %s", flagAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			<-roomDone
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("[relay] http server shutdown error")
	}
	<-roomDone
	log.Info().Msg("[relay] shutdown complete")
	return nil
}
