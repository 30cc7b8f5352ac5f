package ewmh

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func makeClientMessage(action, prop1, prop2 uint32) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{action, prop1, prop2, 0, 0}),
	}
}

func TestCmdReassemblerScenarioS6(t *testing.T) {
	var r CmdReassembler

	if cmd, done := r.Feed(append([]byte("MoveResize "), byte(CmdFirstOfMulti))); done || cmd != "" {
		t.Fatalf("first fragment should not complete, got %q %v", cmd, done)
	}
	if cmd, done := r.Feed(append([]byte("SetGeometry 800"), byte(CmdContinuing))); done || cmd != "" {
		t.Fatalf("continuation fragment should not complete, got %q %v", cmd, done)
	}
	cmd, done := r.Feed(append([]byte("x600+10+10"), byte(CmdEndOfMulti)))
	if !done {
		t.Fatalf("expected completion on end-of-multi marker")
	}
	want := "MoveResize SetGeometry 800x600+10+10"
	if cmd != want {
		t.Errorf("got %q want %q", cmd, want)
	}
}

func TestCmdReassemblerSingle(t *testing.T) {
	var r CmdReassembler
	cmd, done := r.Feed(append([]byte("Close"), byte(CmdSingle)))
	if !done || cmd != "Close" {
		t.Fatalf("single message should complete immediately, got %q %v", cmd, done)
	}
}

func TestCmdReassemblerOverLongResets(t *testing.T) {
	var r CmdReassembler
	big := make([]byte, 2000)
	for i := range big {
		big[i] = 'a'
	}
	r.Feed(append([]byte{'x'}, byte(CmdFirstOfMulti)))
	r.buf = big // simulate accumulation past the cap without re-deriving it byte by byte
	cmd, done := r.Feed(append([]byte("tail"), byte(CmdEndOfMulti)))
	if done || cmd != "" {
		t.Fatalf("over-long reassembly must not be surfaced as a command, got %q %v", cmd, done)
	}
}

func TestDecodeWmState(t *testing.T) {
	ev := makeClientMessage(1, 42, 99)
	msg := DecodeWmState(ev)
	if msg.Action != StateAdd {
		t.Errorf("got action %v want add", msg.Action)
	}
	if msg.Prop1 != 42 || msg.Prop2 != 99 {
		t.Errorf("got props %v %v", msg.Prop1, msg.Prop2)
	}
}
