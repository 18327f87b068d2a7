package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	gocache "github.com/patrickmn/go-cache"

	"github.com/odesa-navmannia/walkbot/internal/config"
)

// RateLimit returns middleware that enforces a per-chat per-minute message
// cap. Counters live in an in-memory TTL cache; callbacks are not limited
// so button taps stay responsive.
func RateLimit() bot.Middleware {
	counters := gocache.New(time.Minute, 5*time.Minute)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			key := fmt.Sprintf("%d", chatID)

			count := 1
			if err := counters.Add(key, 1, time.Minute); err != nil {
				n, incErr := counters.IncrementInt(key, 1)
				if incErr != nil {
					// Counter expired between Add and Increment; start over.
					counters.Set(key, 1, time.Minute)
				} else {
					count = n
				}
			}

			if count > config.RateLimitPerMinute {
				slog.Debug("rate limited", "chat_id", chatID, "count", count)
				if count == config.RateLimitPerMinute+1 {
					b.SendMessage(ctx, &bot.SendMessageParams{
						ChatID: chatID,
						Text:   "⏳ Забагато запитів. Зачекай хвилинку.",
					})
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
