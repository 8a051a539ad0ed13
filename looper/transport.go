// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"fmt"
	"strings"
)

// State is the transport mode of the engine.
type State uint32

const (
	Idle State = iota
	Recording
	Overdubbing
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Overdubbing:
		return "overdubbing"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Action is a transport request carried by a SetMode message.
type Action uint8

const (
	ActionNone Action = iota
	ActionRecord
	ActionMarkLoop
	ActionOverdub
	ActionPlay
	ActionStop
	// ActionCycle steps through Idle, Recording, Overdubbing and Playing
	// like a single footswitch.
	ActionCycle
)

var actionNames = [...]string{
	ActionNone:     "none",
	ActionRecord:   "record",
	ActionMarkLoop: "mark",
	ActionOverdub:  "overdub",
	ActionPlay:     "play",
	ActionStop:     "stop",
	ActionCycle:    "cycle",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction converts an action name such as "record" or "mark" to an Action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if a != int(ActionNone) && name == s {
			return Action(a), nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Effect is the side effect the engine performs when a transition commits.
type Effect uint8

const (
	EffectNone Effect = iota
	// EffectBeginTake stops the player and starts a new take at the cursor.
	EffectBeginTake
	// EffectResolveLoop ends the take at the cursor, publishes the loop
	// length and starts the player on the new region.
	EffectResolveLoop
	// EffectRestartLoop starts the player on the existing region.
	EffectRestartLoop
	// EffectHalt stops the player and capture.
	EffectHalt
)

// Transition is the outcome of applying an Action in a State.
type Transition struct {
	From   State
	To     State
	Effect Effect
}

// Next returns the transition for action a in state from. hasLoop reports
// whether a loop region already exists. ok is false for pairs that are
// no-ops, such as play while Idle.
func Next(from State, a Action, hasLoop bool) (tr Transition, ok bool) {
	tr.From = from

	switch a {
	case ActionStop:
		tr.To, tr.Effect = Idle, EffectHalt
		return tr, from != Idle

	case ActionRecord:
		if from == Idle || from == Playing {
			tr.To, tr.Effect = Recording, EffectBeginTake
			return tr, true
		}

	case ActionMarkLoop:
		if from == Recording {
			tr.To, tr.Effect = Overdubbing, EffectResolveLoop
			return tr, true
		}

	case ActionPlay:
		switch from {
		case Recording:
			tr.To, tr.Effect = Playing, EffectResolveLoop
			return tr, true
		case Overdubbing:
			tr.To = Playing
			return tr, true
		}

	case ActionOverdub:
		if from == Playing {
			tr.To = Overdubbing
			return tr, true
		}

	case ActionCycle:
		switch from {
		case Idle:
			if hasLoop {
				tr.To, tr.Effect = Overdubbing, EffectRestartLoop
			} else {
				tr.To, tr.Effect = Recording, EffectBeginTake
			}
		case Recording:
			tr.To, tr.Effect = Overdubbing, EffectResolveLoop
		case Overdubbing:
			tr.To = Playing
		case Playing:
			tr.To, tr.Effect = Idle, EffectHalt
		}
		return tr, true
	}

	return Transition{From: from, To: from}, false
}
