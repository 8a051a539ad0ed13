// SPDX-License-Identifier: EPL-2.0

package score

import "errors"

var (
	ErrInvalidPosition = errors.New("invalid time or frame count")
	ErrMissingTime     = errors.New("event needs at or at_frame")
	ErrAmbiguousTime   = errors.New("event has both at and at_frame")
	ErrMissingRegion   = errors.New("loop event needs start and end")
	ErrUnexpectedRange = errors.New("only loop events take start and end")
	ErrRateMismatch    = errors.New("cue sheet sample rate does not match the session")
)
