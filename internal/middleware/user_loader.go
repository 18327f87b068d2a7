package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFinder creates-or-refreshes a user record on contact.
type UserFinder interface {
	Upsert(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, bool, error)
}

// Registrations is notified when a user is seen for the first time.
type Registrations interface {
	LogRegistration(telegramID int64, name, username string)
}

// GetUser extracts the loaded user from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that loads the user into context,
// creating the record on first contact.
func UserLoader(users UserFinder, regs Registrations, cfg interface{ IsAdmin(int64) bool }) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			from := updateSender(update)
			if from == nil {
				next(ctx, b, update)
				return
			}

			user, created, err := users.Upsert(ctx, from.ID, from.FirstName, from.Username, cfg.IsAdmin(from.ID))
			if err == nil && user != nil {
				ctx = context.WithValue(ctx, userKey, user)
				if created && regs != nil {
					regs.LogRegistration(user.TelegramID, user.FirstName, user.Username)
				}
			}

			next(ctx, b, update)
		}
	}
}

func updateSender(update *models.Update) *models.User {
	if update.Message != nil {
		return update.Message.From
	}
	if update.CallbackQuery != nil {
		return &update.CallbackQuery.From
	}
	return nil
}
