package observability

import (
	"os"

	"github.com/danmuck/sbcontrol/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures runtime logging and returns a logger tagged with app.
// The global logger is replaced with the tagged one.
func InitLogger(app string) zerolog.Logger {
	cfg := logging.ConfigureRuntime()
	logger := logging.NewConsole(os.Stderr, cfg).With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
