package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory []int64

func (d staticDirectory) AllIDs(context.Context) ([]int64, error) {
	return d, nil
}

func TestBroadcastCountsSentAndFailed(t *testing.T) {
	dir := staticDirectory{1, 2, 3, 4, 5}
	s := NewBroadcastService(dir)

	var mu sync.Mutex
	delivered := make(map[int64]bool)

	sent, failed, err := s.Send(context.Background(), "привіт", func(_ context.Context, chatID int64, _ string) error {
		mu.Lock()
		defer mu.Unlock()
		if chatID%2 == 0 {
			return errors.New("bot was blocked by the user")
		}
		delivered[chatID] = true
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), sent)
	assert.Equal(t, int64(2), failed)
	assert.Len(t, delivered, 3)
}

func TestBroadcastDirectoryErrorAborts(t *testing.T) {
	s := NewBroadcastService(failingDirectory{})

	_, _, err := s.Send(context.Background(), "привіт", func(context.Context, int64, string) error {
		t.Fatal("send must not run when the directory fails")
		return nil
	})
	require.Error(t, err)
}

type failingDirectory struct{}

func (failingDirectory) AllIDs(context.Context) ([]int64, error) {
	return nil, errors.New("db down")
}
