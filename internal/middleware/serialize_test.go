package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func updateFrom(userID int64) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: userID},
		},
	}
}

func TestSerializeSameUserNeverOverlaps(t *testing.T) {
	mw := Serialize()

	var active, peak int32
	handler := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler(context.Background(), nil, updateFrom(7))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak), "same-user events must run one at a time")
}

func TestSerializeDifferentUsersRunConcurrently(t *testing.T) {
	mw := Serialize()

	started := make(chan int64, 2)
	release := make(chan struct{})
	handler := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		started <- update.Message.From.ID
		<-release
	})

	go handler(context.Background(), nil, updateFrom(1))
	go handler(context.Background(), nil, updateFrom(2))

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("handlers for different users blocked each other")
		}
	}
	close(release)
}

func TestSerializePassesThroughWithoutSender(t *testing.T) {
	mw := Serialize()

	called := false
	handler := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
	})
	handler(context.Background(), nil, &models.Update{})

	assert.True(t, called)
}
