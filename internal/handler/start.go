package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/odesa-navmannia/walkbot/internal/middleware"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	// Returning to the menu abandons any walk in flight.
	if user := middleware.GetUser(ctx); user != nil {
		h.walks.Abandon(user.TelegramID)
	}

	kb := telegram.ReplyKeyboard(
		[]string{BtnWhat, BtnHow},
		[]string{BtnWalk},
		[]string{BtnRouteOptions},
		[]string{BtnReviews},
		[]string{BtnGuided},
		[]string{BtnSupport},
	)

	text := "<b>Привіт!</b> Це <i>Одеса Навмання</i> — твоя несподівана, але продумана екскурсія містом.\n\n" +
		"Ти не обираєш маршрут — маршрут обирає тебе.\n\n" +
		"Обери, з чого хочеш почати 👇"

	telegram.SendText(ctx, b, chatID, text, kb)
}

func (h *Handler) handleWhat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegram.SendText(ctx, b, update.Message.Chat.ID,
		"«Одеса Навмання» — Telegram-бот, який обирає маршрут по Одесі замість тебе.\n"+
			"Тисни кнопку — отримай маршрут із 3, 5 або 10 локацій.", nil)
}

func (h *Handler) handleHow(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegram.SendText(ctx, b, update.Message.Chat.ID,
		"1️⃣ Обираєш кількість локацій\n"+
			"2️⃣ Отримуєш точки одну за одною\n"+
			"3️⃣ Йдеш гуляти\n"+
			"4️⃣ Ділишся враженнями", nil)
}

func (h *Handler) handleRouteOptions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegram.SendText(ctx, b, update.Message.Chat.ID,
		"🔸 3 локації — коротка прогулянка\n"+
			"🔸 5 локацій — на пів дня\n"+
			"🔸 10 локацій — справжня пригода!\n"+
			"🌟 Фірмовий маршрут — історія, рандом і гастро-точка", nil)
}

func (h *Handler) handleReviews(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	kb := telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("✍️ Залишити відгук", "fb|leave")),
	)
	telegram.SendText(ctx, b, update.Message.Chat.ID,
		"🔹 «Кайф! Дуже атмосферно»\n"+
			"🔹 «Думав, що знаю Одесу — але бот здивував»\n"+
			"🔹 «Брали маршрут втрьох — було круто!»", kb)
}

func (h *Handler) handleGuided(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegram.SendText(ctx, b, update.Message.Chat.ID,
		"Напиши мені в особисті — домовимось про прогулянку з гідом 🙂", nil)
}
