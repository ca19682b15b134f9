package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. Each can be overridden from the environment and
// seeds the corresponding command line flag.
var (
	CanvasWidth    = getEnvInt("SNAKE_CANVAS_WIDTH", 400)
	CanvasHeight   = getEnvInt("SNAKE_CANVAS_HEIGHT", 300)
	CellSize       = getEnvInt("SNAKE_CELL_SIZE", 10)
	BaseInterval   = getEnvMillis("SNAKE_BASE_INTERVAL_MS", 100)
	SpeedStep      = getEnvMillis("SNAKE_SPEED_STEP_MS", 5)
	SpeedFloor     = getEnvMillis("SNAKE_SPEED_FLOOR_MS", 45)
	SpeedThreshold = getEnvInt("SNAKE_SPEED_THRESHOLD", 5)
	InputRate      = rate.Limit(getEnvInt("SNAKE_INPUT_RPS", 20))
	InputBurst     = getEnvInt("SNAKE_INPUT_BURST", 5)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvMillis(varName string, defaults int) time.Duration {
	return time.Duration(getEnvInt(varName, defaults)) * time.Millisecond
}
