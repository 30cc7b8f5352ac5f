package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// ModMask is the set of modifier bits a keybinding/mousebinding is grabbed
// under, before stripping the three "noise" locks (spec.md §4.6 "Modifier
// normalization").
type ModMask uint16

const (
	ModShift ModMask = xproto.ModMaskShift
	ModLock  ModMask = xproto.ModMaskLock
	ModCtrl  ModMask = xproto.ModMaskControl
	ModMod1  ModMask = xproto.ModMask1
	ModMod2  ModMask = xproto.ModMask2 // typically NumLock
	ModMod3  ModMask = xproto.ModMask3
	ModMod4  ModMask = xproto.ModMask4 // typically Super
	ModMod5  ModMask = xproto.ModMask5 // typically ScrollLock
)

// LockMasks returns the bits that must be ignored/combined-over when
// grabbing, per spec.md §4.6: NumLock, ScrollLock and CapsLock.
func (c *Conn) LockMasks() (numLock, scrollLock, capsLock ModMask) {
	return c.numLockMask, c.scrollLockMask, ModLock
}

// NormalizeModifiers strips NumLock/ScrollLock/CapsLock from an event's
// modifier state before binding lookup (spec.md §4.6).
func (c *Conn) NormalizeModifiers(state uint16) uint16 {
	mask := uint16(ModLock) | uint16(c.numLockMask) | uint16(c.scrollLockMask)
	return state &^ mask
}

// GrabKeyAllLockCombos grabs (mods, code) on win along with every
// combination of NumLock/ScrollLock/CapsLock ORed in, so a binding matches
// regardless of which lock keys happen to be engaged (spec.md §4.6).
func (c *Conn) GrabKeyAllLockCombos(win xproto.Window, mods uint16, code xproto.Keycode) error {
	locks := []uint16{0, uint16(c.numLockMask), uint16(c.scrollLockMask), uint16(ModLock),
		uint16(c.numLockMask) | uint16(c.scrollLockMask),
		uint16(c.numLockMask) | uint16(ModLock),
		uint16(c.scrollLockMask) | uint16(ModLock),
		uint16(c.numLockMask) | uint16(c.scrollLockMask) | uint16(ModLock)}
	for _, l := range locks {
		err := xproto.GrabKeyChecked(
			c.X, false, win, mods|l, code,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
		).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// UngrabKey releases a previously grabbed key on win for the base
// modifiers (all lock combinations are released with AnyModifier).
func (c *Conn) UngrabKey(win xproto.Window, code xproto.Keycode) error {
	return xproto.UngrabKeyChecked(c.X, code, win, xproto.ModMaskAny).Check()
}

// GrabKeyboard installs a (temporary) active keyboard grab, used by the key
// grabber when descending into a chain (spec.md §4.6) and by keyboard
// move/resize modal handlers (spec.md §4.8).
func (c *Conn) GrabKeyboard() error {
	reply, err := xproto.GrabKeyboard(
		c.X, false, c.Root, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Reply()
	if err != nil {
		return err
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return grabStatusError(reply.Status)
	}
	return nil
}

func (c *Conn) UngrabKeyboard() error {
	return xproto.UngrabKeyboardChecked(c.X, xproto.TimeCurrentTime).Check()
}

// GrabPointer installs an active pointer grab for the duration of a
// move/resize/grouping-drag modal handler (spec.md §4.8), confining events
// to eventMask and presenting cursor.
func (c *Conn) GrabPointer(eventMask uint16, cursor xproto.Cursor) error {
	reply, err := xproto.GrabPointer(
		c.X, false, c.Root, eventMask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		c.Root, cursor, xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return err
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return grabStatusError(reply.Status)
	}
	return nil
}

func (c *Conn) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.X, xproto.TimeCurrentTime).Check()
}

// WarpPointer moves the pointer to an absolute root-window position,
// mirroring marwind's x11.WarpPointer used by Manager.warpPointerToFrame
// and spec.md §4.5's warpToWorkspace.
func (c *Conn) WarpPointer(x, y int32) error {
	return xproto.WarpPointerChecked(c.X, 0, c.Root, 0, 0, 0, 0, int16(x), int16(y)).Check()
}

type grabStatusErr struct{ status byte }

func grabStatusError(status byte) error { return &grabStatusErr{status} }

func (e *grabStatusErr) Error() string {
	names := map[byte]string{
		xproto.GrabStatusAlreadyGrabbed: "already grabbed",
		xproto.GrabStatusInvalidTime:    "invalid time",
		xproto.GrabStatusNotViewable:    "not viewable",
		xproto.GrabStatusFrozen:         "frozen",
	}
	if n, ok := names[e.status]; ok {
		return "x11: grab failed: " + n
	}
	return "x11: grab failed"
}
