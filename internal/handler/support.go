package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

func (h *Handler) handleSupport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	var tiers []string
	var tierButtons []models.InlineKeyboardButton
	for _, amount := range config.DonationAmountsUAH {
		label := amount.StringFixed(0) + " грн"
		tiers = append(tiers, label)
		tierButtons = append(tierButtons,
			telegram.InlineButton("✅ "+label, "dn|done|"+amount.String()))
	}

	text := fmt.Sprintf(
		"Дякуємо за підтримку! 🙏\n\n"+
			"Проєкт живе на донати. Орієнтовні суми: %s — але будь-яка допомога цінна.\n\n"+
			"Задонатив? Тисни кнопку зі своєю сумою 👇",
		strings.Join(tiers, " / "))

	kb := telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.URLButton("💛 Підтримати проєкт", h.cfg.DonateURL)),
		telegram.ButtonRow(tierButtons[:2]...),
		telegram.ButtonRow(tierButtons[2:]...),
		telegram.ButtonRow(telegram.InlineButton("✅ Інша сума", "dn|done")),
	)
	telegram.SendText(ctx, b, update.Message.Chat.ID, text, kb)
}

// handleDonationCallback records dn|done[|<amount>] claims. Without an
// amount segment the claim is logged with a zero sum.
func (h *Handler) handleDonationCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}

	amount := decimal.Zero
	if parts := strings.Split(cb.Data, "|"); len(parts) > 2 {
		if parsed, err := decimal.NewFromString(parts[2]); err == nil {
			amount = parsed
		}
	}

	if err := h.feedback.RecordDonation(ctx, cb.From.ID, "support_menu", amount); err != nil {
		slog.Error("record donation", "user_id", cb.From.ID, "error", err)
	}
	h.answer(ctx, b, cb.ID, "Дякуємо! 💛")
}
