package domain

import "errors"

var (
	ErrNoPlacesFound = errors.New("no places found nearby")
	ErrUserNotFound  = errors.New("user not found")
)
