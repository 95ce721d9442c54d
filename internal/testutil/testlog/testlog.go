package testlog

import (
	"testing"

	"github.com/danmuck/sbcontrol/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Start configures test logging and records the test name.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("start")
}

// Logger returns a logger that writes through t.Log, so output is attached
// to the test that produced it.
func Logger(t *testing.T) zerolog.Logger {
	t.Helper()
	cfg := logging.ConfigureTests()
	return logging.NewConsole(zerolog.NewTestWriter(t), cfg).With().Str("test", t.Name()).Logger()
}
