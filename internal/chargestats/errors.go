package chargestats

import "github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"

const (
	// Parse Errors
	ErrMalformedSummaryLine = errors.ErrorCode("chargestats_malformed_summary_line")

	// Throttle Errors
	ErrTimeSourceUnreadable = errors.ErrorCode("chargestats_time_source_unreadable")

	// Drain Errors
	ErrEmptyPrimarySource = errors.ErrorCode("chargestats_empty_primary_source")
)
