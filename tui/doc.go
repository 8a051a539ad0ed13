// SPDX-License-Identifier: EPL-2.0

// Package tui is a terminal controller for a running looper. It speaks to
// the engine only through a looper.Controller: key presses become commands,
// and a periodic tick drains notifications and refreshes the status view.
package tui
