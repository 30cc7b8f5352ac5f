package handler

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/keygrabber"
	"github.com/pekwm/pekwm-sub002/internal/wo"
	"github.com/pekwm/pekwm-sub002/internal/x11"
)

// KeyboardMoveResize is the "Keyboard move/resize" modal handler (spec.md
// §4.8 table row 2, action "MoveResize"): accepts bindings from the
// move-resize key context and applies directional deltas of a fixed pixel
// step. Deltas in percent of the head are not supported.
type KeyboardMoveResize struct {
	frameHandle wo.Handle
	resolve     func(wo.Handle) (*frame.Frame, bool)

	startGeom geom.Geometry
	workarea  geom.Geometry
	hints     client.SizeHints

	grabber *keygrabber.Grabber
	conn    *x11.Conn

	step int32 // pixels per directional key press
}

func NewKeyboardMoveResize(f *frame.Frame, resolve func(wo.Handle) (*frame.Frame, bool), workarea geom.Geometry, hints client.SizeHints, grabber *keygrabber.Grabber, step int32) *KeyboardMoveResize {
	return &KeyboardMoveResize{
		frameHandle: f.Handle(),
		resolve:     resolve,
		startGeom:   f.Geometry(),
		workarea:    workarea,
		hints:       hints,
		grabber:     grabber,
		step:        step,
	}
}

func (k *KeyboardMoveResize) Init(conn *x11.Conn) error {
	k.conn = conn
	return conn.GrabKeyboard()
}

func (k *KeyboardMoveResize) upgrade() (*frame.Frame, bool) { return k.resolve(k.frameHandle) }

func (k *KeyboardMoveResize) HandleButtonPress(xproto.ButtonPressEvent) Result     { return Skip }
func (k *KeyboardMoveResize) HandleButtonRelease(xproto.ButtonReleaseEvent) Result { return Skip }
func (k *KeyboardMoveResize) HandleMotionNotify(xproto.MotionNotifyEvent) Result   { return Skip }
func (k *KeyboardMoveResize) HandleExpose(xproto.ExposeEvent) Result               { return Skip }

func (k *KeyboardMoveResize) HandleKeyPress(ev xproto.KeyPressEvent) Result {
	mod := k.conn.NormalizeModifiers(uint16(ev.State))
	res, actions := k.grabber.Match(keygrabber.ContextMoveResize, keygrabber.Chord{Mod: mod, Code: ev.Detail}, time.Now())
	switch res {
	case keygrabber.MatchAdvanced:
		return Processed
	case keygrabber.MatchNone:
		return Processed
	}

	f, ok := k.upgrade()
	if !ok {
		k.conn.UngrabKeyboard()
		return StopSkip
	}

	for _, a := range actions {
		if a == "MoveCancel" {
			f.SetGeometry(k.startGeom)
			k.conn.UngrabKeyboard()
			return StopProcessed
		}
		k.applyDirectional(f, a)
	}
	return Processed
}

func (k *KeyboardMoveResize) applyDirectional(f *frame.Frame, a string) {
	g := f.Geometry()
	switch a {
	case "Left":
		g.X -= k.step
	case "Right":
		g.X += k.step
	case "Up":
		g.Y -= k.step
	case "Down":
		g.Y += k.step
	case "GrowLeft":
		f.Resize(k.hints, g.Width+uint32(k.step), g.Height, true, false)
		return
	case "GrowRight":
		f.Resize(k.hints, g.Width+uint32(k.step), g.Height, false, false)
		return
	case "Confirm":
		k.conn.UngrabKeyboard()
		return
	}
	f.SetGeometry(g)
	f.ClampToHead(k.workarea, 20)
}
