package middleware

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Serialize returns middleware that processes events for the same user in
// arrival order. Handlers suspend on catalog and Bot API calls, so without
// this a quick second tap could interleave with an in-flight fetch and
// corrupt the session's anchor or step index. Different users still run
// concurrently.
func Serialize() bot.Middleware {
	var mu sync.Mutex
	locks := make(map[int64]*userLock)

	acquire := func(userID int64) *userLock {
		mu.Lock()
		l, ok := locks[userID]
		if !ok {
			l = &userLock{}
			locks[userID] = l
		}
		l.refs++
		mu.Unlock()
		l.mu.Lock()
		return l
	}
	release := func(userID int64, l *userLock) {
		l.mu.Unlock()
		mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(locks, userID)
		}
		mu.Unlock()
	}

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			from := updateSender(update)
			if from == nil {
				next(ctx, b, update)
				return
			}
			l := acquire(from.ID)
			defer release(from.ID, l)
			next(ctx, b, update)
		}
	}
}

type userLock struct {
	mu   sync.Mutex
	refs int
}
