package handler

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/service"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	walks     *service.WalkService
	quota     *service.QuotaService
	feedback  *service.FeedbackService
	broadcast *service.BroadcastService
	stats     StatsSource
	tgLogger  *telegram.TelegramLogger
}

// StatsSource feeds the admin /stat command.
type StatsSource interface {
	CountTotal(ctx context.Context) (int64, error)
	CountCreatedAfter(ctx context.Context, after time.Time) (int64, error)
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Walks     *service.WalkService
	Quota     *service.QuotaService
	Feedback  *service.FeedbackService
	Broadcast *service.BroadcastService
	Stats     StatsSource
	TgLogger  *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		walks:     deps.Walks,
		quota:     deps.Quota,
		feedback:  deps.Feedback,
		broadcast: deps.Broadcast,
		stats:     deps.Stats,
		tgLogger:  deps.TgLogger,
	}
}

// Register wires every menu label, command and callback prefix.
func (h *Handler) Register() {
	b := h.bot

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnBack, bot.MatchTypeExact, h.handleStart)

	b.RegisterHandler(bot.HandlerTypeMessageText, BtnWhat, bot.MatchTypeExact, h.handleWhat)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnHow, bot.MatchTypeExact, h.handleHow)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnRouteOptions, bot.MatchTypeExact, h.handleRouteOptions)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnReviews, bot.MatchTypeExact, h.handleReviews)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnGuided, bot.MatchTypeExact, h.handleGuided)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnSupport, bot.MatchTypeExact, h.handleSupport)

	b.RegisterHandler(bot.HandlerTypeMessageText, BtnWalk, bot.MatchTypeExact, h.handleWalkMenu)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnWalk3, bot.MatchTypeExact, h.handleWalkStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnWalk5, bot.MatchTypeExact, h.handleWalkStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnWalk10, bot.MatchTypeExact, h.handleWalkStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnSignature, bot.MatchTypeExact, h.handleWalkStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, BtnQuickPick, bot.MatchTypeExact, h.handleWalkStart)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypePrefix, h.handleBroadcast)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stat", bot.MatchTypeExact, h.handleStat)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "wk|", bot.MatchTypePrefix, h.handleWalkCallback)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "fb|", bot.MatchTypePrefix, h.handleFeedbackCallback)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "dn|", bot.MatchTypePrefix, h.handleDonationCallback)
}

// HandleDefault routes updates no registered handler matched: location
// shares, photos and free text.
func (h *Handler) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	switch {
	case update.Message.Location != nil:
		h.handleLocation(ctx, b, update)
	case len(update.Message.Photo) > 0:
		h.HandlePhoto(ctx, b, update)
	case update.Message.Text != "" && !strings.HasPrefix(update.Message.Text, "/"):
		h.HandleText(ctx, b, update)
	}
}
