package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/odesa-navmannia/walkbot/internal/middleware"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

// handleBroadcast fans /broadcast <text> out to every known user.
// Individual delivery failures never abort the batch.
func (h *Handler) handleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil || !user.IsAdmin {
		return
	}
	chatID := update.Message.Chat.ID

	text := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/broadcast"))
	if text == "" {
		telegram.SendText(ctx, b, chatID, "Використання: /broadcast <текст>", nil)
		return
	}

	sent, failed, err := h.broadcast.Send(ctx, text, func(ctx context.Context, recipient int64, msg string) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: recipient, Text: msg})
		return err
	})
	if err != nil {
		slog.Error("broadcast", "error", err)
		telegram.SendText(ctx, b, chatID, "❌ Розсилка не вдалася.", nil)
		return
	}

	telegram.SendText(ctx, b, chatID,
		fmt.Sprintf("📣 Розіслано: %d, не доставлено: %d", sent, failed), nil)
}

func (h *Handler) handleStat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil || !user.IsAdmin {
		return
	}
	chatID := update.Message.Chat.ID

	total, err := h.stats.CountTotal(ctx)
	if err != nil {
		slog.Error("count users", "error", err)
		telegram.SendText(ctx, b, chatID, "❌ Не вдалося зібрати статистику.", nil)
		return
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -int(now.Weekday()))

	today, _ := h.stats.CountCreatedAfter(ctx, todayStart)
	week, _ := h.stats.CountCreatedAfter(ctx, weekStart)

	telegram.SendText(ctx, b, chatID, fmt.Sprintf(
		"📊 <b>Статистика</b>\n\n"+
			"👥 Користувачі:\n"+
			"Всього: %d\n"+
			"Сьогодні: %d\n"+
			"За тиждень: %d",
		total, today, week), nil)
}
