// Package cmdlog wraps one CLI command body with run counting and
// outcome logging.
package cmdlog

import (
	"time"

	"ratiocop/internal/logging"
	"ratiocop/internal/metrics"
)

func Run(cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	start := time.Now()
	if err := f(); err != nil {
		metrics.IncCommandError(cmd)
		logging.Error(cmd+"_error", map[string]any{
			"error":   err.Error(),
			"elapsed": time.Since(start).String(),
		})
		return err
	}
	logging.Debug(cmd+"_ok", map[string]any{"elapsed": time.Since(start).String()})
	return nil
}
