package x11

import "github.com/BurntSushi/xgb/xproto"

// Keysym values for the two lock keys the grabber must normalize away
// (spec.md §4.6). CapsLock is always ModLock by X convention, so only
// NumLock and ScrollLock need to be resolved from the live modifier map.
const (
	keysymNumLock    = 0xff7f
	keysymScrollLock = 0xff14
)

// LoadLockMasks walks the server's modifier mapping to discover which
// modifier bit (Mod1..Mod5) NumLock and ScrollLock are bound to on this
// keyboard layout, so GrabKeyAllLockCombos/NormalizeModifiers work
// regardless of layout. keycodeToKeysym resolves each modifier keycode;
// internal/manager passes Conn.KeycodeToKeysym (mirrors marwind's
// keysym.LoadKeyMapping(x11.X) call site in wm.go Init).
func (c *Conn) LoadLockMasks(keycodeToKeysym func(xproto.Keycode) uint32) error {
	mapping, err := xproto.GetModifierMapping(c.X).Reply()
	if err != nil {
		return err
	}
	per := int(mapping.KeycodesPerModifier)
	for modIndex := 0; modIndex < 8; modIndex++ { // Shift..Mod5
		for i := 0; i < per; i++ {
			kc := mapping.Keycodes[modIndex*per+i]
			if kc == 0 {
				continue
			}
			switch keycodeToKeysym(kc) {
			case keysymNumLock:
				c.numLockMask = ModMask(1 << modIndex)
			case keysymScrollLock:
				c.scrollLockMask = ModMask(1 << modIndex)
			}
		}
	}
	return nil
}
