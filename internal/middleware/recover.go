package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ErrorReporter mirrors recovered failures into the ops channel.
type ErrorReporter interface {
	LogError(err error, context string)
}

// Recover returns middleware that recovers from handler panics. Failures
// stay conversational: the user gets the generic apology instead of
// silence, and the panic is mirrored to the reporter.
func Recover(reporter ErrorReporter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered in handler",
						"panic", r,
						"stack", string(debug.Stack()),
					)
					if reporter != nil {
						reporter.LogError(fmt.Errorf("%v", r), "handler panic")
					}
					apologize(ctx, b, update)
				}
			}()
			next(ctx, b, update)
		}
	}
}

func apologize(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Щось пішло не так 😔 Спробуй ще раз за хвилину.",
	})
}

func updateChatID(update *models.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message.Message != nil {
			return update.CallbackQuery.Message.Message.Chat.ID
		}
		return update.CallbackQuery.From.ID
	}
	return 0
}
