package domain

import "errors"

// Sentinel errors
var (
	// ErrHistoryMiss indicates the history store has no entry for a path
	ErrHistoryMiss = errors.New("history entry not found")

	// ErrHistoryDisabled indicates history was requested but is turned off
	ErrHistoryDisabled = errors.New("history is disabled")
)
