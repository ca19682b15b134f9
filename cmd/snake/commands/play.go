package commands

import (
	"context"
	"io/ioutil"

	"github.com/battlesnakeio/snake/controller"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays snake in the terminal",
	RunE: func(*cobra.Command, []string) error {
		return play()
	},
}

func play() error {
	// The terminal belongs to the renderer, logs only go to --log-file.
	closeLog, err := setupLogging(ioutil.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := gameConfig()
	if err != nil {
		return err
	}

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to init terminal")
	}
	defer termbox.Close()

	w, h := termbox.Size()
	if err := fitsScreen(w, h, cfg.Grid); err != nil {
		return err
	}

	game, err := controller.New(cfg, controller.TickerScheduler{}, randomSource(), termboxRenderer{})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- game.Run(ctx) }()

	events := setupEventQueue()
	defer termbox.Interrupt()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				cancel()
				return <-done
			}
			if ev.Type == termbox.EventError {
				cancel()
				<-done
				return errors.Wrap(ev.Err, "terminal input failed")
			}
			if ev.Type == termbox.EventResize {
				if err := game.Render(); err != nil {
					cancel()
					<-done
					return err
				}
				continue
			}
			a := actionForEvent(ev)
			switch {
			case a.quit:
				cancel()
				return <-done
			case a.restart:
				if err := game.Restart(); err != nil && err != controller.ErrNotGameOver {
					cancel()
					<-done
					return err
				}
			case a.direction.Valid():
				game.RequestDirection(a.direction)
			}
		case err := <-done:
			if err != nil {
				log.WithError(err).Error("game loop failed")
			}
			return err
		}
	}
}
