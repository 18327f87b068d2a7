package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/odesa-navmannia/walkbot/internal/config"
)

// UserDirectory lists every known recipient.
type UserDirectory interface {
	AllIDs(ctx context.Context) ([]int64, error)
}

// Sender delivers one message to one chat.
type Sender func(ctx context.Context, chatID int64, text string) error

// BroadcastService fans an admin message out to all known users. Individual
// delivery failures (blocked bot, deleted account) are logged and skipped,
// never abort the batch.
type BroadcastService struct {
	users UserDirectory
}

func NewBroadcastService(users UserDirectory) *BroadcastService {
	return &BroadcastService{users: users}
}

// Send returns how many deliveries succeeded and how many failed.
func (s *BroadcastService) Send(ctx context.Context, text string, send Sender) (sent, failed int64, err error) {
	ids, err := s.users.AllIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	var okCount, failCount atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.BroadcastWorkers)

	for _, id := range ids {
		g.Go(func() error {
			if err := send(gctx, id, text); err != nil {
				slog.Warn("broadcast delivery failed", "chat_id", id, "error", err)
				failCount.Add(1)
				return nil
			}
			okCount.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return okCount.Load(), failCount.Load(), err
	}
	return okCount.Load(), failCount.Load(), nil
}
