package autoprops

import (
	"regexp"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

func TestFindFirstRuleWinsInOrder(t *testing.T) {
	rs := &RuleSet{Rules: []Rule{
		{Name: "first", Match: Match{Class: regexp.MustCompile("^Firefox$")}, Scope: ApplyOnNew,
			Action: Action{Workspace: int32Ptr(2)}},
		{Name: "second", Match: Match{Class: regexp.MustCompile("^Firefox$")}, Scope: ApplyOnNew,
			Action: Action{Workspace: int32Ptr(5)}},
	}}
	r, ok := rs.FindFirst(Subject{Class: "Firefox"}, ApplyOnNew)
	if !ok || r.Name != "first" {
		t.Fatalf("expected first matching rule to win, got %+v ok=%v", r, ok)
	}
}

func TestScopeGating(t *testing.T) {
	rs := &RuleSet{Rules: []Rule{
		{Match: Match{Class: regexp.MustCompile("xterm")}, Scope: ApplyOnReload},
	}}
	if _, ok := rs.FindFirst(Subject{Class: "xterm"}, ApplyOnNew); ok {
		t.Fatalf("rule scoped to reload must not match on new")
	}
	if _, ok := rs.FindFirst(Subject{Class: "xterm"}, ApplyOnReload); !ok {
		t.Fatalf("rule scoped to reload should match on reload")
	}
}

func TestApplyDeniesMaximizeWhenCfgDenySet(t *testing.T) {
	c := client.New(1)
	deny := client.DenyStateMaximizedHorz
	r := Rule{Action: Action{MaxHorz: SetTrue, DenyMask: &deny}}
	res := Apply(r, c, nil)
	if res.ApplyMaxHorz != Unset {
		t.Fatalf("expected maximize request forced to Unset under cfg-deny, got %v", res.ApplyMaxHorz)
	}
}

func TestApplyRealizesStickyAndShadeDirectly(t *testing.T) {
	c := client.New(1)
	f := frame.New(1, c.Handle(), frame.DecorState{})
	r := Rule{Action: Action{Sticky: SetTrue, Shaded: SetTrue}}
	Apply(r, c, f)
	if !c.Sticky() || !f.Sticky() {
		t.Fatalf("expected sticky applied to both client and frame")
	}
	if !f.Shaded() {
		t.Fatalf("expected shade applied to frame")
	}
}

func TestGroupTargetPicksFirstUnderMax(t *testing.T) {
	r := wo.NewRegistry()
	h1 := mustHandle(t, r, 101)
	h2 := mustHandle(t, r, 102)
	h3 := mustHandle(t, r, 103)

	full := frame.New(1, h1, frame.DecorState{DecorName: "browsers"})
	full.AttachClient(h2)
	other := frame.New(2, h3, frame.DecorState{DecorName: "browsers"})

	target, ok := GroupTarget("browsers", 2, []*frame.Frame{full, other})
	if !ok || target != other {
		t.Fatalf("expected second under-capacity frame to win")
	}
}

type fakeWO struct{ wo.Base }

func mustHandle(t *testing.T, r *wo.Registry, win xproto.Window) wo.Handle {
	t.Helper()
	h, err := r.Insert(&fakeWO{Base: wo.NewBase(wo.TypeClient, win)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return h
}

func int32Ptr(v int32) *int32 { return &v }
