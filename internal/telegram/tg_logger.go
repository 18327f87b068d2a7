package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/odesa-navmannia/walkbot/internal/config"
)

// TelegramLogger mirrors operational events into an admin supergroup with
// per-type topics. A zero chat id disables it.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{cfg: cfg}
}

// Attach binds the bot instance. The logger stays silent until attached,
// which lets it be wired into middlewares created before the bot itself.
func (l *TelegramLogger) Attach(b *bot.Bot) {
	l.bot = b
}

type LogType string

const (
	LogTypeError        LogType = "error"
	LogTypeRegistration LogType = "registration"
	LogTypeFeedback     LogType = "feedback"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	if len([]rune(message)) > config.MaxTelegramMessageLen {
		message = string([]rune(message)[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	msg := fmt.Sprintf("❌ Error\n\nContext: %s\nError: %s\nTime: %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) LogRegistration(telegramID int64, name, username string) {
	msg := fmt.Sprintf("👤 New user\n\nID: %d\nName: %s\nUsername: @%s",
		telegramID, name, username)
	l.Log(LogTypeRegistration, msg)
}

func (l *TelegramLogger) LogFeedback(telegramID int64, text string) {
	msg := fmt.Sprintf("✍️ Review\n\nUser: %d\n\n%s", telegramID, text)
	l.Log(LogTypeFeedback, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeRegistration:
		return l.cfg.LogTopicRegistration
	case LogTypeFeedback:
		return l.cfg.LogTopicFeedback
	default:
		return 0
	}
}
