// Command bot runs the companion Telegram bot. It long-polls for updates and
// answers /start with a button that opens the CRM mini-app. BOT_TOKEN is
// required; WEBAPP_URL defaults to the local dev server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmih/go-crm-backend/internal/bot"
	"github.com/jmih/go-crm-backend/internal/config"
	"github.com/jmih/go-crm-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// Accept the aiogram-era variable name too.
	token := sysutil.FirstNonEmpty(cfg.Bot.Token, os.Getenv("TELEGRAM_BOT_TOKEN"))
	if token == "" {
		log.Fatal().Msg("BOT_TOKEN is required")
	}

	b, err := bot.New(token, cfg.Bot.WebAppURL, sysutil.IsTruthy(os.Getenv("BOT_DEBUG")), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("bot startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("webapp_url", cfg.Bot.WebAppURL).Msg("bot polling")
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("bot stopped with error")
	}
	log.Info().Msg("bot stopped")
}
