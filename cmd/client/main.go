package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/wschat/internal/client/connection"
	"github.com/yourusername/wschat/internal/client/messagelog"
	"github.com/yourusername/wschat/internal/client/transport"
	"github.com/yourusername/wschat/internal/client/ui"
)

var rootCmd = &cobra.Command{
	Use:   "wschat",
	Short: "Terminal WebSocket chat client",
	RunE:  runClient,
}

var (
	flagServerURL string
	flagLogFile   string
	flagLogLevel  string
	flagConnect   bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagServerURL, "server", "ws://localhost:3000/ws", "WebSocket server URL")
	flags.StringVar(&flagLogFile, "log-file", "wschat.log", "diagnostic log file (the terminal belongs to the UI)")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&flagConnect, "connect", false, "connect to the server on start")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	logFile, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	log.Logger = zerolog.New(logFile).Level(level).With().Timestamp().Logger()

	connMgr := connection.NewManager(
		transport.NewWSDialer(log.Logger),
		messagelog.New(),
		connection.WithLogger(log.Logger),
	)
	// Release the socket however the program ends
	defer connMgr.Close()

	var opts []ui.Option
	if flagConnect {
		opts = append(opts, ui.WithAutoConnect())
	}

	log.Info().Str("server", flagServerURL).Msg("[client] starting")
	p := tea.NewProgram(ui.NewModel(flagServerURL, connMgr, opts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info().Msg("[client] shutdown complete")
	return nil
}
