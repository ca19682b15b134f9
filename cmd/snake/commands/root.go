package commands

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/rules"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "snake is the classic snake game, in a terminal or behind an http api",
	RunE: func(c *cobra.Command, args []string) error {
		return playCmd.RunE(c, args)
	},
	SilenceUsage: true,
}

var (
	canvasWidth    int
	canvasHeight   int
	cellSize       int
	baseInterval   time.Duration
	speedStep      time.Duration
	speedFloor     time.Duration
	speedThreshold int
	seed           int64
	logLevel       string
	logFile        string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&canvasWidth, "width", config.CanvasWidth, "canvas width in pixels")
	flags.IntVar(&canvasHeight, "height", config.CanvasHeight, "canvas height in pixels")
	flags.IntVar(&cellSize, "cell-size", config.CellSize, "size of a grid cell in pixels")
	flags.DurationVar(&baseInterval, "interval", config.BaseInterval, "starting tick interval")
	flags.DurationVar(&speedStep, "speed-step", config.SpeedStep, "how much the interval shrinks on each speed up")
	flags.DurationVar(&speedFloor, "speed-floor", config.SpeedFloor, "the shortest tick interval")
	flags.IntVar(&speedThreshold, "speed-threshold", config.SpeedThreshold, "points between speed ups")
	flags.Int64Var(&seed, "seed", 0, "seed for food placement, 0 picks one from the clock")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
}

// Execute runs the root command
func Execute() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func gameConfig() (controller.Config, error) {
	grid, err := rules.GridForCanvas(canvasWidth, canvasHeight, cellSize)
	if err != nil {
		return controller.Config{}, err
	}
	cfg := controller.DefaultConfig()
	cfg.Grid = grid
	cfg.Speed = rules.SpeedSchedule{
		Base:      baseInterval,
		Step:      speedStep,
		Floor:     speedFloor,
		Threshold: speedThreshold,
	}
	return cfg, cfg.Validate()
}

func randomSource() *rand.Rand {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}
