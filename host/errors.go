// SPDX-License-Identifier: EPL-2.0

package host

import "errors"

var (
	// ErrNotMono is returned when an input source has more than one channel.
	ErrNotMono = errors.New("input source must be mono")
	// ErrInvalidSize is returned for non-positive ring or buffer sizes.
	ErrInvalidSize = errors.New("invalid buffer size")
)
