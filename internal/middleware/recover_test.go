package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedError struct {
	err  error
	note string
}

type fakeReporter struct {
	reports []capturedError
}

func (f *fakeReporter) LogError(err error, context string) {
	f.reports = append(f.reports, capturedError{err: err, note: context})
}

func TestRecoverSwallowsPanicAndReports(t *testing.T) {
	reporter := &fakeReporter{}
	mw := Recover(reporter)

	handler := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		handler(context.Background(), nil, &models.Update{})
	})

	require.Len(t, reporter.reports, 1)
	assert.Contains(t, reporter.reports[0].err.Error(), "boom")
	assert.Equal(t, "handler panic", reporter.reports[0].note)
}

func TestRecoverPassesThroughWithoutPanic(t *testing.T) {
	reporter := &fakeReporter{}
	mw := Recover(reporter)

	called := false
	handler := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
	})
	handler(context.Background(), nil, &models.Update{})

	assert.True(t, called)
	assert.Empty(t, reporter.reports)
}

func TestRecoverWithNilReporter(t *testing.T) {
	mw := Recover(nil)

	handler := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		handler(context.Background(), nil, &models.Update{})
	})
}

func TestUpdateChatID(t *testing.T) {
	assert.Equal(t, int64(0), updateChatID(&models.Update{}))
	assert.Equal(t, int64(5), updateChatID(&models.Update{
		Message: &models.Message{Chat: models.Chat{ID: 5}},
	}))
	assert.Equal(t, int64(7), updateChatID(&models.Update{
		CallbackQuery: &models.CallbackQuery{From: models.User{ID: 7}},
	}))
}
