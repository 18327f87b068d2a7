package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
)

func TestReviewTextOnlyStoredWhenAwaited(t *testing.T) {
	sink := &memSink{}
	s := NewFeedbackService(sink)
	ctx := context.Background()

	stored, err := s.SubmitText(ctx, 1, "чудовий бот")
	require.NoError(t, err)
	assert.False(t, stored, "unprompted text is not a review")
	assert.Empty(t, sink.events)

	s.RequestReview(1)
	assert.True(t, s.Awaiting(1))

	stored, err = s.SubmitText(ctx, 1, "чудовий бот")
	require.NoError(t, err)
	assert.True(t, stored)
	require.Len(t, sink.events, 1)
	assert.Equal(t, domain.ActionReviewText, sink.events[0].Action)
	assert.Equal(t, "чудовий бот", sink.events[0].Context)

	// Collection disarmed after one text.
	assert.False(t, s.Awaiting(1))
}

func TestReviewTextTruncated(t *testing.T) {
	sink := &memSink{}
	s := NewFeedbackService(sink)
	s.RequestReview(1)

	long := strings.Repeat("ї", config.FeedbackMaxLen+50)
	stored, err := s.SubmitText(context.Background(), 1, long)
	require.NoError(t, err)
	require.True(t, stored)
	assert.Len(t, []rune(sink.events[0].Context), config.FeedbackMaxLen)
}

func TestReviewPhotoKeepsCollectionArmed(t *testing.T) {
	sink := &memSink{}
	s := NewFeedbackService(sink)
	ctx := context.Background()
	s.RequestReview(1)

	stored, err := s.SubmitPhoto(ctx, 1, "file-123")
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, s.Awaiting(1), "a photo may precede the review text")

	stored, err = s.SubmitText(ctx, 1, "і фото додаю")
	require.NoError(t, err)
	assert.True(t, stored)
	assert.False(t, s.Awaiting(1))
}

func TestAwaitingIsPerUser(t *testing.T) {
	s := NewFeedbackService(&memSink{})
	s.RequestReview(1)
	assert.True(t, s.Awaiting(1))
	assert.False(t, s.Awaiting(2))
}

func TestRecordDonationCarriesAmount(t *testing.T) {
	sink := &memSink{}
	s := NewFeedbackService(sink)
	ctx := context.Background()

	require.NoError(t, s.RecordDonation(ctx, 1, "support_menu", decimal.NewFromInt(100)))
	require.Len(t, sink.events, 1)
	assert.Equal(t, domain.ActionDonated, sink.events[0].Action)
	assert.Equal(t, "support_menu", sink.events[0].Context)
	assert.True(t, sink.events[0].Amount.Equal(decimal.NewFromInt(100)))

	// Honor-system claims without a tier are logged with a zero sum.
	require.NoError(t, s.RecordDonation(ctx, 1, "paywall_extend", decimal.Zero))
	assert.True(t, sink.events[1].Amount.IsZero())
}
