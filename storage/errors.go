package storage

import "errors"

// Business-rule rejections surfaced to the request layer. These are
// synchronous failures, not transient faults; handlers map each to an
// HTTP status.
var (
	ErrMarketNotFound       = errors.New("market not found")
	ErrOptionNotFound       = errors.New("market option not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrMarketClosed         = errors.New("market is closed")
	ErrMarketResolved       = errors.New("market is already resolved")
	ErrMarketNotResolved    = errors.New("market is not resolved")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidAmount        = errors.New("stake amount must be positive")
	ErrNoUnclaimedPositions = errors.New("no unclaimed positions found")
)
