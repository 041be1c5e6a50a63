// Package logger holds the shared go-logging logger used across bloodline.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const module = "bloodline"

// Log is the process-wide logger. It logs at WARNING until Setup runs.
var Log = logging.MustGetLogger(module)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{shortfunc} ▶ %{message}`,
)

func init() {
	_ = Setup("")
}

// Setup installs a stderr backend and sets the level (DEBUG, INFO, NOTICE,
// WARNING, ERROR, CRITICAL). An empty level means WARNING.
func Setup(level string) error {
	if level == "" {
		level = "WARNING"
	}
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return fmt.Errorf("could not parse log level %q: %w", level, err)
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, module)
	logging.SetBackend(leveled)
	return nil
}
