package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
)

// FeedbackService collects free-form reviews. The "what are we waiting
// for" flag lives here rather than in the walk session because reviews are
// usually left after the walk finished and its session is gone.
type FeedbackService struct {
	sink FeedbackSink

	mu       sync.Mutex
	awaiting map[int64]bool
}

func NewFeedbackService(sink FeedbackSink) *FeedbackService {
	return &FeedbackService{sink: sink, awaiting: make(map[int64]bool)}
}

// RequestReview arms review collection for the user: the next text or
// photo message is treated as a review.
func (s *FeedbackService) RequestReview(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting[userID] = true
}

// Awaiting reports whether the user's next message is a review.
func (s *FeedbackService) Awaiting(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting[userID]
}

// SubmitText stores a review text, trimmed to the allowed length, and
// disarms collection. Returns false when no review was awaited.
func (s *FeedbackService) SubmitText(ctx context.Context, userID int64, text string) (bool, error) {
	if !s.disarm(userID) {
		return false, nil
	}
	runes := []rune(text)
	if len(runes) > config.FeedbackMaxLen {
		text = string(runes[:config.FeedbackMaxLen])
	}
	err := s.sink.Append(ctx, domain.FeedbackEvent{
		UserID:  userID,
		Action:  domain.ActionReviewText,
		Context: text,
	})
	if err != nil {
		return true, fmt.Errorf("store review text: %w", err)
	}
	return true, nil
}

// SubmitPhoto stores a review photo reference. A photo may accompany the
// text, so collection stays armed until text arrives or the user moves on.
func (s *FeedbackService) SubmitPhoto(ctx context.Context, userID int64, fileID string) (bool, error) {
	if !s.Awaiting(userID) {
		return false, nil
	}
	err := s.sink.Append(ctx, domain.FeedbackEvent{
		UserID:  userID,
		Action:  domain.ActionReviewPhoto,
		Context: fileID,
	})
	if err != nil {
		return true, fmt.Errorf("store review photo: %w", err)
	}
	return true, nil
}

// RecordDonation logs an honor-system "I donated" claim. Amount is the
// claimed sum in hryvnias; zero when the user did not pick a tier.
func (s *FeedbackService) RecordDonation(ctx context.Context, userID int64, note string, amount decimal.Decimal) error {
	err := s.sink.Append(ctx, domain.FeedbackEvent{
		UserID:  userID,
		Action:  domain.ActionDonated,
		Context: note,
		Amount:  amount,
	})
	if err != nil {
		return fmt.Errorf("record donation: %w", err)
	}
	return nil
}

func (s *FeedbackService) disarm(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.awaiting[userID] {
		return false
	}
	delete(s.awaiting, userID)
	return true
}
