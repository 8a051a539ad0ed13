// SPDX-License-Identifier: EPL-2.0

package looper

import "errors"

var (
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidFrameCount   = errors.New("frames per buffer must be positive")
	ErrInvalidSegmentSize  = errors.New("segment size must be positive")
	ErrInvalidQueueSize    = errors.New("queue sizes must be positive")
	ErrInvalidSegmentLimit = errors.New("history limit must be non-negative and cover the preallocated segments")
	ErrUnknownCaptureMode  = errors.New("unknown capture mode")
	ErrUnknownAction       = errors.New("unknown transport action")
	ErrTimeout             = errors.New("timed out waiting for engine notification")
)
