package domain

import "time"

type User struct {
	TelegramID      int64
	FirstName       string
	Username        string
	IsAdmin         bool
	LastInteraction time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
