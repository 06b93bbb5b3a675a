// Command devserver runs the in-memory reservation backend used for local
// development and integration testing of the booking client.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/campusrooms/booking-client/internal/devserver"
	"github.com/campusrooms/booking-client/internal/infrastructure/config"
	"github.com/campusrooms/booking-client/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	srv := devserver.New(devserver.Options{
		JWTSecret: cfg.DevServer.JWTSecret,
		TokenTTL:  cfg.DevServer.TokenTTL,
		Log:       log,
	})

	addr := ":" + cfg.DevServer.Port
	log.Info().Str("addr", addr).Msg("devserver listening")
	if err := srv.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("devserver stopped")
	}
}
