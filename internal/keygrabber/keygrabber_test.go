package keygrabber

import (
	"testing"
	"time"
)

func TestSingleChordTerminalMatch(t *testing.T) {
	g := NewGrabber(500 * time.Millisecond)
	g.Forests[ContextGlobal].Bind([]Chord{{Mod: 8, Code: 24}}, []string{"Close"})

	res, actions := g.Match(ContextGlobal, Chord{Mod: 8, Code: 24}, time.Now())
	if res != MatchTerminal || len(actions) != 1 || actions[0] != "Close" {
		t.Fatalf("expected terminal match with Close, got %v %v", res, actions)
	}
}

func TestChainedChordAdvancesThenTerminates(t *testing.T) {
	g := NewGrabber(time.Second)
	ctrlX := Chord{Mod: 4, Code: 53}
	ctrlC := Chord{Mod: 4, Code: 54}
	g.Forests[ContextGlobal].Bind([]Chord{ctrlX, ctrlC}, []string{"Exit"})

	now := time.Now()
	res, _ := g.Match(ContextGlobal, ctrlX, now)
	if res != MatchAdvanced {
		t.Fatalf("expected first chord to advance the chain, got %v", res)
	}
	if !g.InChain() {
		t.Fatalf("expected grabber to report an in-progress chain")
	}
	res, actions := g.Match(ContextGlobal, ctrlC, now.Add(10*time.Millisecond))
	if res != MatchTerminal || actions[0] != "Exit" {
		t.Fatalf("expected chain to terminate with Exit, got %v %v", res, actions)
	}
	if g.InChain() {
		t.Fatalf("chain should reset after a terminal match")
	}
}

func TestChainResetsAfterTimeout(t *testing.T) {
	g := NewGrabber(10 * time.Millisecond)
	ctrlX := Chord{Mod: 4, Code: 53}
	ctrlC := Chord{Mod: 4, Code: 54}
	g.Forests[ContextGlobal].Bind([]Chord{ctrlX, ctrlC}, []string{"Exit"})

	now := time.Now()
	g.Match(ContextGlobal, ctrlX, now)
	res, _ := g.Match(ContextGlobal, ctrlC, now.Add(time.Second))
	if res != MatchNone {
		t.Fatalf("expected stale chain to reset and miss, got %v", res)
	}
}

func TestUnboundChordReturnsNone(t *testing.T) {
	g := NewGrabber(time.Second)
	res, _ := g.Match(ContextGlobal, Chord{Mod: 1, Code: 99}, time.Now())
	if res != MatchNone {
		t.Fatalf("expected no match for unbound chord, got %v", res)
	}
}
