package ewmh

import (
	"github.com/BurntSushi/xgb/xproto"
)

// StateAction is the data.l[0] field of a _NET_WM_STATE client message
// (spec.md §6 "Bit layout of _NET_WM_STATE client message").
type StateAction uint32

const (
	StateRemove StateAction = 0
	StateAdd    StateAction = 1
	StateToggle StateAction = 2
)

// WmStateMessage is a decoded _NET_WM_STATE client message: an action plus
// up to two state atoms (format 32, data.l[0..2]).
type WmStateMessage struct {
	Action      StateAction
	Prop1, Prop2 xproto.Atom
}

// DecodeWmState extracts a WmStateMessage from a raw ClientMessageEvent's
// 32-bit data, per the bit layout spec.md §6 fixes: "format 32, data.l[0] =
// action ..., data.l[1], data.l[2] = up to two state atoms".
func DecodeWmState(ev xproto.ClientMessageEvent) WmStateMessage {
	d := ev.Data.Data32
	msg := WmStateMessage{Action: StateAction(d[0])}
	if len(d) > 1 {
		msg.Prop1 = xproto.Atom(d[1])
	}
	if len(d) > 2 {
		msg.Prop2 = xproto.Atom(d[2])
	}
	return msg
}

// AcceptedClientMessages lists every client message type spec.md §4.10
// says the core accepts. internal/handler's dispatcher switches on these.
var AcceptedClientMessages = []string{
	"_NET_CURRENT_DESKTOP",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLOSE_WINDOW",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_RESTACK_WINDOW",
	"_NET_REQUEST_FRAME_EXTENTS",
	"WM_CHANGE_STATE",
	"_PEKWM_CMD",
}

// pekwmCmdMaxLen is the maximum reassembled _PEKWM_CMD length (spec.md §6).
const pekwmCmdMaxLen = 1024

// pekwmCmdPayloadLen is the text payload carried per message (spec.md §6:
// "up to ~20 bytes in one message, with a continuation convention where the
// last byte encodes...").
const pekwmCmdPayloadLen = 19 // 20 data bytes total, last byte is the marker

// CmdContinuation is the 20th byte's continuation mode (spec.md §6).
type CmdContinuation byte

const (
	CmdSingle       CmdContinuation = 0
	CmdFirstOfMulti CmdContinuation = 1
	CmdContinuing   CmdContinuation = 2
	CmdEndOfMulti   CmdContinuation = 3
)

// CmdReassembler accumulates _PEKWM_CMD fragments across client messages
// into one command string, implementing spec.md §6's _PEKWM_CMD format and
// §8 testable property 10 ("for any command ≤1024 bytes split into (1
// first, k continuation, 1 end) messages, the reassembled string equals the
// concatenation of payloads in order").
type CmdReassembler struct {
	buf []byte
}

// Feed appends one message's payload. It returns the complete command and
// true once an End-of-multi or Single marker closes the sequence; in-flight
// First/Continuation messages return ("", false). Once the accumulated data
// exceeds pekwmCmdMaxLen the sequence is discarded: its End message returns
// ("", false) and resets the reassembler, rather than returning a
// silently-truncated command.
func (r *CmdReassembler) Feed(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	marker := CmdContinuation(data[len(data)-1])
	payload := data[:len(data)-1]

	switch marker {
	case CmdSingle:
		r.buf = nil
		return string(payload), true
	case CmdFirstOfMulti:
		r.buf = append([]byte(nil), payload...)
		return "", false
	case CmdContinuing:
		r.buf = append(r.buf, payload...)
		if len(r.buf) > pekwmCmdMaxLen {
			r.buf = r.buf[:pekwmCmdMaxLen+1]
		}
		return "", false
	case CmdEndOfMulti:
		r.buf = append(r.buf, payload...)
		out := string(r.buf)
		r.buf = nil
		if len(out) > pekwmCmdMaxLen {
			return "", false
		}
		return out, true
	default:
		r.buf = nil
		return "", false
	}
}
