package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lmittmann/tint"
	walkbotroot "github.com/odesa-navmannia/walkbot"
	"github.com/odesa-navmannia/walkbot/internal/catalog"
	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/handler"
	"github.com/odesa-navmannia/walkbot/internal/middleware"
	"github.com/odesa-navmannia/walkbot/internal/repository"
	"github.com/odesa-navmannia/walkbot/internal/service"
	"github.com/odesa-navmannia/walkbot/internal/session"
	"github.com/odesa-navmannia/walkbot/internal/telegram"
)

func main() {
	// Load configuration first so the log format is known
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	var lh slog.Handler
	if cfg.LogFormat == "text" {
		lh = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		})
	} else {
		lh = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(lh))

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(walkbotroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepo(pool)
	visitedRepo := repository.NewVisitedRepo(pool)
	limitsRepo := repository.NewLimitsRepo(pool)
	feedbackRepo := repository.NewFeedbackRepo(pool)

	// Initialize services
	sessions := session.NewStore()
	places := catalog.New(catalog.NewGooglePlaces(cfg.GoogleAPIKey))
	quotaService := service.NewQuotaService(limitsRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	walkService := service.NewWalkService(sessions, places, visitedRepo, quotaService, feedbackRepo)
	broadcastService := service.NewBroadcastService(userRepo)

	// Telegram logger is attached once the bot exists
	tgLogger := telegram.NewTelegramLogger(cfg)

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(tgLogger),
			middleware.Logging(),
			middleware.RateLimit(),
			middleware.Serialize(),
			middleware.UserLoader(userRepo, tgLogger, cfg),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleDefault(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	tgLogger.Attach(b)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	h = handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Walks:     walkService,
		Quota:     quotaService,
		Feedback:  feedbackService,
		Broadcast: broadcastService,
		Stats:     userRepo,
		TgLogger:  tgLogger,
	})
	h.Register()

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
