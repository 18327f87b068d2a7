package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeedbackAction classifies entries in the append-only feedback log.
type FeedbackAction string

const (
	ActionShown          FeedbackAction = "shown"
	ActionInteresting    FeedbackAction = "interesting"
	ActionNotInteresting FeedbackAction = "not_interesting"
	ActionSkipped        FeedbackAction = "skipped"
	ActionReviewText     FeedbackAction = "review_text"
	ActionReviewPhoto    FeedbackAction = "review_photo"
	ActionDonated        FeedbackAction = "donated"
)

// FeedbackEvent is one append-only log record. PlaceID and Context are
// optional depending on the action; Amount is the claimed hryvnia sum on
// ActionDonated records and zero otherwise.
type FeedbackEvent struct {
	ID        uuid.UUID
	UserID    int64
	PlaceID   string
	Action    FeedbackAction
	Context   string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
