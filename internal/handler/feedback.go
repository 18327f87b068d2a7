package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/odesa-navmannia/walkbot/internal/middleware"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

func (h *Handler) handleFeedbackCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}
	h.answer(ctx, b, cb.ID, "")
	h.feedback.RequestReview(cb.From.ID)
	telegram.SendText(ctx, b, callbackChatID(cb),
		"Напиши свій відгук (до 256 символів), можеш додати фото 📝📸", nil)
}

// HandleText is the catch-all for free text. An awaited review is stored;
// anything else gets a short generic acknowledgement rather than silence.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	handled, err := h.feedback.SubmitText(ctx, user.TelegramID, update.Message.Text)
	if err != nil {
		slog.Error("submit review text", "user_id", user.TelegramID, "error", err)
		telegram.SendText(ctx, b, chatID, "Не вдалося зберегти відгук 😔 Спробуй ще раз.", nil)
		return
	}
	if handled {
		h.tgLogger.LogFeedback(user.TelegramID, update.Message.Text)
		telegram.SendText(ctx, b, chatID, "Дякую за відгук! 💌", nil)
		return
	}

	telegram.SendText(ctx, b, chatID, "Я тут 🙂 Обери щось із меню 👇", nil)
}

// HandlePhoto stores photos only while a review is awaited.
func (h *Handler) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || len(update.Message.Photo) == 0 {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	// Largest size is last.
	photo := update.Message.Photo[len(update.Message.Photo)-1]
	handled, err := h.feedback.SubmitPhoto(ctx, user.TelegramID, photo.FileID)
	if err != nil {
		slog.Error("submit review photo", "user_id", user.TelegramID, "error", err)
		return
	}
	if handled {
		telegram.SendText(ctx, b, update.Message.Chat.ID, "Фото додано до відгуку 📸", nil)
	}
}
