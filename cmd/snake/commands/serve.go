package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/battlesnakeio/snake/api"
	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/controller"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var apiAddr string

func init() {
	serveCmd.Flags().StringVar(&apiAddr, "api-addr", ":3005", "address the api listens on")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "runs a game headless and serves it over http and websockets",
	RunE: func(*cobra.Command, []string) error {
		return serve()
	},
}

func serve() error {
	closeLog, err := setupLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := gameConfig()
	if err != nil {
		return err
	}

	hub := api.NewHub()
	game, err := controller.New(cfg, controller.TickerScheduler{}, randomSource(), hub)
	if err != nil {
		return err
	}
	server := api.New(apiAddr, game, hub, config.InputRate, config.InputBurst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	loopErr := make(chan error, 1)
	go func() { loopErr <- game.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.WaitForExit() }()

	select {
	case s := <-sig:
		log.WithField("signal", s).Info("shutting down")
	case err = <-loopErr:
		if err != nil {
			log.WithError(err).Error("game loop failed")
		}
	case err = <-serveErr:
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.WithError(shutdownErr).Error("unable to shut down api")
	}
	return err
}
