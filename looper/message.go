// SPDX-License-Identifier: EPL-2.0

package looper

import "fmt"

// MessageKind identifies a control message.
type MessageKind uint8

const (
	MsgSetLoopRegion MessageKind = iota + 1
	MsgSetMode
)

// Message is a control request sent from the control goroutine to the
// engine. It is a plain value so queueing it never allocates.
type Message struct {
	Kind   MessageKind
	Region Region // MsgSetLoopRegion
	Action Action // MsgSetMode
}

// SetLoopRegion builds a message replacing the loop region with [start, end).
func SetLoopRegion(start, end uint64) Message {
	return Message{Kind: MsgSetLoopRegion, Region: Region{Start: start, End: end}}
}

// SetMode builds a message requesting a transport action.
func SetMode(a Action) Message {
	return Message{Kind: MsgSetMode, Action: a}
}

func (m Message) String() string {
	switch m.Kind {
	case MsgSetLoopRegion:
		return fmt.Sprintf("SetLoopRegion[%d,%d)", m.Region.Start, m.Region.End)
	case MsgSetMode:
		return "SetMode(" + m.Action.String() + ")"
	default:
		return fmt.Sprintf("Message(%d)", uint8(m.Kind))
	}
}

// NotificationKind identifies an engine notification.
type NotificationKind uint8

const (
	// LoopLengthResolved reports a committed loop region and its length.
	LoopLengthResolved NotificationKind = iota + 1
	// BufferExchanged reports that the engine took a spare segment from
	// the pool. Handle is the segment index.
	BufferExchanged
	// Rejected reports a command that was refused without any state change.
	Rejected
	// CapacityExceeded reports that the history hit its segment limit and
	// the current take was truncated at Size.
	CapacityExceeded
	// StateChanged reports a committed transport transition.
	StateChanged
)

func (k NotificationKind) String() string {
	switch k {
	case LoopLengthResolved:
		return "loop-length-resolved"
	case BufferExchanged:
		return "buffer-exchanged"
	case Rejected:
		return "rejected"
	case CapacityExceeded:
		return "capacity-exceeded"
	case StateChanged:
		return "state-changed"
	default:
		return fmt.Sprintf("NotificationKind(%d)", uint8(k))
	}
}

// RejectReason explains a Rejected notification.
type RejectReason uint8

const (
	RejectEmptyRegion RejectReason = iota + 1
	RejectRegionBeyondHistory
	RejectEmptyTake
	RejectUnknownMessage
)

func (r RejectReason) String() string {
	switch r {
	case RejectEmptyRegion:
		return "empty region"
	case RejectRegionBeyondHistory:
		return "region beyond recorded history"
	case RejectEmptyTake:
		return "empty take"
	case RejectUnknownMessage:
		return "unknown message"
	default:
		return fmt.Sprintf("RejectReason(%d)", uint8(r))
	}
}

// Notification is an event published by the engine. SampleTime is the clock
// value at the start of the callback that produced it. Only the fields that
// belong to Kind are set.
type Notification struct {
	Kind       NotificationKind
	SampleTime uint64

	Length uint64 // LoopLengthResolved
	Region Region // LoopLengthResolved
	Handle int    // BufferExchanged
	Reason RejectReason
	Msg    Message // Rejected
	Size   uint64  // CapacityExceeded
	From   State   // StateChanged
	To     State   // StateChanged
}

func (n Notification) String() string {
	switch n.Kind {
	case LoopLengthResolved:
		return fmt.Sprintf("@%d loop length %d [%d,%d)", n.SampleTime, n.Length, n.Region.Start, n.Region.End)
	case BufferExchanged:
		return fmt.Sprintf("@%d buffer exchanged handle=%d", n.SampleTime, n.Handle)
	case Rejected:
		return fmt.Sprintf("@%d rejected %s: %s", n.SampleTime, n.Msg, n.Reason)
	case CapacityExceeded:
		return fmt.Sprintf("@%d capacity exceeded at %d", n.SampleTime, n.Size)
	case StateChanged:
		return fmt.Sprintf("@%d %s -> %s", n.SampleTime, n.From, n.To)
	default:
		return fmt.Sprintf("@%d %s", n.SampleTime, n.Kind)
	}
}
