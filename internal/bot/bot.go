// Package bot implements the companion Telegram bot. Its only job is to hand
// users a button that opens the CRM mini-app inside Telegram's embedded
// browser. The actual CRM lives behind the HTTP server; the bot never talks
// to the database.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Bot wraps the Telegram Bot API client with the mini-app URL it advertises.
type Bot struct {
	api       *tgbotapi.BotAPI
	webAppURL string
	log       zerolog.Logger
}

// New authenticates against the Telegram Bot API and returns a ready Bot.
// webAppURL must be the public HTTPS address of the /webapp page; Telegram
// refuses to open plain-HTTP WebApps outside of test environments.
// debug turns on the client library's request/response dump.
func New(token, webAppURL string, debug bool, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: authorize: %w", err)
	}
	api.Debug = debug
	log.Info().Str("username", api.Self.UserName).Msg("bot authorized")
	return &Bot{api: api, webAppURL: webAppURL, log: log}, nil
}

// webappKeyboard builds the single inline button that opens the mini-app.
// A WebApp button, not a URL button: Telegram then opens the page in its
// embedded browser with init data attached.
func (b *Bot) webappKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonWebApp(
				"Открыть CRM",
				tgbotapi.WebAppInfo{URL: b.webAppURL},
			),
		),
	)
}

// Run starts long polling and blocks until ctx is canceled. Update handling
// is sequential; the bot only ever answers /start, so there is nothing to
// parallelize.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{tgbotapi.UpdateTypeMessage}

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// handleMessage answers /start with the mini-app button. Anything else gets a
// short hint pointing back to /start.
func (b *Bot) handleMessage(m *tgbotapi.Message) {
	var msg tgbotapi.MessageConfig
	if m.IsCommand() && m.Command() == "start" {
		msg = tgbotapi.NewMessage(m.Chat.ID,
			"привет! это мини-CRM для ЖМЫХ.\nнажми кнопку ниже, чтобы открыть мини-приложение.")
		msg.ReplyMarkup = b.webappKeyboard()
	} else {
		msg = tgbotapi.NewMessage(m.Chat.ID, "отправь /start, чтобы открыть CRM.")
	}

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", m.Chat.ID).Msg("send failed")
	}
}
