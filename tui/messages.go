// SPDX-License-Identifier: EPL-2.0

package tui

import "time"

// TickMsg drives the periodic notification pump and status refresh.
type TickMsg struct {
	Time time.Time
}
