// SPDX-License-Identifier: EPL-2.0

package tui

// Key binding constants used in handleKey.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyCtrlC      = "ctrl+c"
	KeyCycle      = " "
	KeyRecord     = "r"
	KeyMark       = "m"
	KeyOverdub    = "o"
	KeyPlay       = "p"
	KeyStop       = "s"
	KeyShorten    = "left"
	KeyLengthen   = "right"
	KeyShiftLeft  = "shift+left"
	KeyShiftRight = "shift+right"
)

// help is the footer text, in display order.
var help = []struct{ key, desc string }{
	{"space", "cycle"},
	{"r", "record"},
	{"m", "mark"},
	{"o", "overdub"},
	{"p", "play"},
	{"s", "stop"},
	{"←/→", "loop end"},
	{"⇧←/⇧→", "move loop"},
	{"q", "quit"},
}
