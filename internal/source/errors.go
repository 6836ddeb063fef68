package source

import "github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"

const (
	ErrUnknownSource = errors.ErrorCode("source_unknown")
	ErrReadFailed    = errors.ErrorCode("source_read_failed")
	ErrClearFailed   = errors.ErrorCode("source_clear_failed")
)
