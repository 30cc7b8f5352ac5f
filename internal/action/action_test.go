package action

import "testing"

func TestParseSimpleAction(t *testing.T) {
	a, err := Parse("MoveResize")
	if err != nil || a.Kind != KindMoveResize {
		t.Fatalf("got %+v err=%v", a, err)
	}
}

func TestParseStateQualifiers(t *testing.T) {
	a, err := Parse("Set Maximize")
	if err != nil || a.State != StateSet || a.Kind != KindMaximize {
		t.Fatalf("got %+v err=%v", a, err)
	}
	a, err = Parse("Unset Shade")
	if err != nil || a.State != StateUnset {
		t.Fatalf("got %+v err=%v", a, err)
	}
}

func TestParseUnknownActionErrors(t *testing.T) {
	if _, err := Parse("Frobnicate"); err == nil {
		t.Fatalf("expected error for unknown action name")
	}
}

func TestParseListSplitsOnSemicolon(t *testing.T) {
	ev, err := ParseList("MoveResize SetGeometry 800x600+10+10; Raise")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(ev.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d: %+v", len(ev.Actions), ev.Actions)
	}
	if ev.Actions[1].Kind != KindRaise {
		t.Fatalf("expected second action Raise, got %+v", ev.Actions[1])
	}
}

func TestMouseTableLookup(t *testing.T) {
	mt := NewMouseTable()
	chord := MouseChord{Context: MouseContextTitlebar, Kind: MousePress, Button: 1}
	mt.Bind(chord, Event{Actions: []Action{{Kind: KindMove}}})

	ev, ok := mt.Lookup(chord)
	if !ok || ev.Actions[0].Kind != KindMove {
		t.Fatalf("expected bound Move action, got %+v ok=%v", ev, ok)
	}
	if _, ok := mt.Lookup(MouseChord{Context: MouseContextBorder, Kind: MousePress, Button: 1}); ok {
		t.Fatalf("expected no binding for different context")
	}
}
