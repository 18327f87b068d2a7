package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/odesa-navmannia/walkbot/internal/maproute"
	"github.com/odesa-navmannia/walkbot/internal/middleware"
	"github.com/odesa-navmannia/walkbot/internal/service"
	"github.com/odesa-navmannia/walkbot/internal/session"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

func (h *Handler) handleWalkMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	text := "Обери тип маршруту 👇"
	if user := middleware.GetUser(ctx); user != nil {
		if l, err := h.quota.Usage(ctx, user.TelegramID); err == nil {
			text += fmt.Sprintf(
				"\n\nСьогодні доступно: прогулянок %d з %d, швидких локацій %d з %d",
				l.WalkCeiling-l.WalksUsed, l.WalkCeiling,
				l.RecCeiling-l.RecsUsed, l.RecCeiling)
		}
	}
	kb := telegram.ReplyKeyboard(
		[]string{BtnWalk3},
		[]string{BtnWalk5},
		[]string{BtnWalk10},
		[]string{BtnSignature},
		[]string{BtnQuickPick},
		[]string{BtnBack},
	)
	telegram.SendText(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handler) handleWalkStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	var mode session.Mode
	count := 0
	switch update.Message.Text {
	case BtnWalk3:
		mode, count = session.ModeRandomWalk, 3
	case BtnWalk5:
		mode, count = session.ModeRandomWalk, 5
	case BtnWalk10:
		mode, count = session.ModeRandomWalk, 10
	case BtnSignature:
		mode = session.ModeSignature
	case BtnQuickPick:
		mode = session.ModeSingle
	default:
		return
	}

	res := h.walks.Start(user.TelegramID, mode, count)
	h.renderResult(ctx, b, chatID, res)
}

// handleLocation consumes shared geolocations. Outside the
// awaiting-location phase the event is simply not a transition.
func (h *Handler) handleLocation(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Location == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	loc := update.Message.Location
	res := h.walks.Location(ctx, user.TelegramID, loc.Latitude, loc.Longitude)
	h.renderResult(ctx, b, update.Message.Chat.ID, res)
}

// handleWalkCallback dispatches wk|<action>|<token>[|<step>] callbacks.
// Stale payloads fall through to ResultNone and only the callback spinner
// is answered.
func (h *Handler) handleWalkCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}
	userID := cb.From.ID
	chatID := callbackChatID(cb)

	parts := strings.Split(cb.Data, "|")
	if len(parts) < 3 {
		h.answer(ctx, b, cb.ID, "")
		return
	}
	action, token := parts[1], parts[2]
	step := -1
	if len(parts) > 3 {
		if n, err := strconv.Atoi(parts[3]); err == nil {
			step = n
		}
	}

	var res *service.StepResult
	switch action {
	case "origin_center":
		res = h.walks.ChooseCenter(ctx, userID, token)
	case "origin_own":
		res = h.walks.ChooseOwnLocation(userID, token)
	case "next":
		res = h.walks.Advance(ctx, userID, token, step)
	case "mark":
		res = h.walks.Mark(ctx, userID, token, step)
	case "skip":
		res = h.walks.Skip(ctx, userID, token, step)
	case "more":
		if err := h.feedback.RecordDonation(ctx, userID, "paywall_extend", decimal.Zero); err != nil {
			slog.Error("record paywall donation", "user_id", userID, "error", err)
		}
		res = h.walks.ExtendAndRetry(ctx, userID)
	case "tmrw":
		h.walks.Abandon(userID)
		h.answer(ctx, b, cb.ID, "")
		telegram.SendText(ctx, b, chatID, "Добре, до завтра! Ліміт оновиться опівночі 🌙", nil)
		return
	case "quit":
		h.walks.Abandon(userID)
		h.answer(ctx, b, cb.ID, "")
		h.handleStartForChat(ctx, b, chatID)
		return
	default:
		h.answer(ctx, b, cb.ID, "")
		return
	}

	switch res.Kind {
	case service.ResultMarked:
		h.answer(ctx, b, cb.ID, "💛 Записав!")
		return
	case service.ResultSkipped:
		h.answer(ctx, b, cb.ID, "Зрозуміло, не твоє")
		return
	case service.ResultNone:
		h.answer(ctx, b, cb.ID, "")
		return
	}

	h.answer(ctx, b, cb.ID, "")
	h.renderResult(ctx, b, chatID, res)
}

// renderResult turns a state-machine outcome into chat output.
func (h *Handler) renderResult(ctx context.Context, b *bot.Bot, chatID int64, res *service.StepResult) {
	switch res.Kind {
	case service.ResultChooseOrigin:
		kb := telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("🏛 Від центру міста", "wk|origin_center|"+res.Token)),
			telegram.ButtonRow(telegram.InlineButton("📍 Від мого місця", "wk|origin_own|"+res.Token)),
		)
		telegram.SendText(ctx, b, chatID, "Звідки починаємо?", kb)

	case service.ResultAskLocation:
		telegram.SendText(ctx, b, chatID, "Надішли свою геолокацію 👇",
			telegram.LocationKeyboard(BtnShareLocation))

	case service.ResultPlace:
		h.renderPlace(ctx, b, chatID, res)

	case service.ResultPaywall:
		used := 0
		ceiling := 0
		if res.Limit != nil {
			used = res.Limit.Used(res.QuotaKind)
			ceiling = res.Limit.Ceiling(res.QuotaKind)
		}
		text := fmt.Sprintf(
			"На сьогодні безкоштовні прогулянки закінчились (%d з %d).\n\n"+
				"Підтримай проєкт — і гуляй далі! Це чесна система: ми віримо тобі на слово 💛",
			used, ceiling)
		kb := telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.URLButton("💛 Підтримати проєкт", h.cfg.DonateURL)),
			telegram.ButtonRow(telegram.InlineButton("✅ Я задонатив — продовжити", "wk|more|"+res.Token)),
			telegram.ButtonRow(telegram.InlineButton("🌙 Повернусь завтра", "wk|tmrw|"+res.Token)),
			telegram.ButtonRow(telegram.InlineButton("⬅ В меню", "wk|quit|"+res.Token)),
		)
		telegram.SendText(ctx, b, chatID, text, kb)

	case service.ResultHardStop:
		telegram.SendText(ctx, b, chatID,
			"Це вже максимум на сьогодні 🙂 Одеса нікуди не дінеться — повертайся завтра!", nil)

	case service.ResultNothingFound:
		telegram.SendText(ctx, b, chatID,
			"Не вдалося знайти нічого поруч 😞 Спробуй пізніше або з іншої точки.", nil)

	case service.ResultFinished:
		h.renderFinish(ctx, b, chatID, res)

	case service.ResultBudget:
		kb := telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("✍️ Залишити відгук", "fb|leave")),
		)
		telegram.SendText(ctx, b, chatID,
			fmt.Sprintf("🎯 Твій бюджет: <b>%s</b>\n\nГарної прогулянки!", res.Budget), kb)

	case service.ResultFailure:
		telegram.SendText(ctx, b, chatID,
			"Щось пішло не так 😔 Спробуй ще раз за хвилину.", nil)
	}
}

func (h *Handler) renderPlace(ctx context.Context, b *bot.Bot, chatID int64, res *service.StepResult) {
	p := res.Place
	caption := fmt.Sprintf("<b>%d/%d. %s</b>\n", res.StepIndex+1, res.Total, p.Name)
	if p.HasRating() {
		caption += fmt.Sprintf("⭐ %.1f (%d відгуків)\n", p.Rating, p.Reviews)
	}
	if p.Address != "" {
		caption += "📍 " + p.Address
	}

	nextLabel := "➡️ Далі"
	if res.LastStep {
		nextLabel = "🏁 Завершити"
	}
	token := res.Token
	step := strconv.Itoa(res.StepIndex)
	kb := telegram.InlineKeyboard(
		telegram.ButtonRow(
			telegram.InlineButton("💛 Цікаво", fmt.Sprintf("wk|mark|%s|%s", token, step)),
			telegram.URLButton("🗺 На мапі", p.MapURL),
		),
		telegram.ButtonRow(
			telegram.InlineButton("👎 Не цікаво", fmt.Sprintf("wk|skip|%s|%s", token, step)),
			telegram.InlineButton(nextLabel, fmt.Sprintf("wk|next|%s|%s", token, step)),
		),
	)

	prefix := ""
	if res.CenterFallback {
		prefix = "Ти задалеко від Одеси, тому стартуємо з центру міста 😉\n\n"
	}

	if p.PhotoURL != "" {
		if prefix != "" {
			telegram.SendText(ctx, b, chatID, strings.TrimSpace(prefix), nil)
		}
		telegram.SendPhotoURL(ctx, b, chatID, p.PhotoURL, caption, kb)
		return
	}
	telegram.SendText(ctx, b, chatID, prefix+caption, kb)
}

func (h *Handler) renderFinish(ctx context.Context, b *bot.Bot, chatID int64, res *service.StepResult) {
	kb := telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.URLButton("💛 Підтримати проєкт", h.cfg.DonateURL)),
		telegram.ButtonRow(telegram.InlineButton("✍️ Залишити відгук", "fb|leave")),
	)

	text := "🏁 Маршрут пройдено! Що скажеш після прогулянки?"
	if link := maproute.DirectionsLink(res.Route); link != "" {
		text += "\n\n🔗 <b>Весь маршрут у Google Maps:</b>\n" + link
	}

	if mapURL := maproute.StaticMapURL(res.Route, h.cfg.GoogleAPIKey); mapURL != "" {
		telegram.SendPhotoURL(ctx, b, chatID, mapURL, "🗺 Твій маршрут", nil)
	}
	telegram.SendText(ctx, b, chatID, text, kb)
}

// handleStartForChat re-sends the main menu without an inbound message.
func (h *Handler) handleStartForChat(ctx context.Context, b *bot.Bot, chatID int64) {
	kb := telegram.ReplyKeyboard(
		[]string{BtnWhat, BtnHow},
		[]string{BtnWalk},
		[]string{BtnRouteOptions},
		[]string{BtnReviews},
		[]string{BtnGuided},
		[]string{BtnSupport},
	)
	telegram.SendText(ctx, b, chatID, "Обери, з чого хочеш почати 👇", kb)
}

func (h *Handler) answer(ctx context.Context, b *bot.Bot, callbackID, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

func callbackChatID(cb *models.CallbackQuery) int64 {
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID
	}
	return cb.From.ID
}
