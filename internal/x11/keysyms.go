package x11

import "github.com/BurntSushi/xgb/xproto"

// keysymCache memoizes one round trip to GetKeyboardMapping for the whole
// keycode range, since the mapping is fixed once a layout is loaded and the
// key grabber consults it on every startup bind and every reload (spec.md
// §4.6 "default keycodes resolved against the running X server's layout").
type keysymCache struct {
	min, max xproto.Keycode
	perCode  byte
	keysyms  []xproto.Keysym
}

func (c *Conn) loadKeysyms() (*keysymCache, error) {
	setup := xproto.Setup(c.X)
	lo, hi := setup.MinKeycode, setup.MaxKeycode
	reply, err := xproto.GetKeyboardMapping(c.X, lo, byte(hi-lo+1)).Reply()
	if err != nil {
		return nil, err
	}
	return &keysymCache{min: lo, max: hi, perCode: reply.KeysymsPerKeycode, keysyms: reply.Keysyms}, nil
}

// KeycodeToKeysym resolves the first (unshifted) keysym bound to code.
func (c *Conn) KeycodeToKeysym(code xproto.Keycode) xproto.Keysym {
	ks, err := c.keysymsLocked()
	if err != nil || code < ks.min || code > ks.max {
		return 0
	}
	idx := int(code-ks.min) * int(ks.perCode)
	if idx >= len(ks.keysyms) {
		return 0
	}
	return ks.keysyms[idx]
}

// KeysymToKeycode reverses the mapping: the first keycode any column of
// which produces sym, used to resolve a config binding's symbolic name
// ("w", "Return", "F2", ...) to the physical keycode the grab syscalls
// need (spec.md §4.6 bindings are stored and parsed by name, grabbed by
// keycode).
func (c *Conn) KeysymToKeycode(sym xproto.Keysym) (xproto.Keycode, bool) {
	ks, err := c.keysymsLocked()
	if err != nil {
		return 0, false
	}
	for i := 0; i+int(ks.perCode) <= len(ks.keysyms); i += int(ks.perCode) {
		for col := 0; col < int(ks.perCode); col++ {
			if ks.keysyms[i+col] == sym {
				return ks.min + xproto.Keycode(i/int(ks.perCode)), true
			}
		}
	}
	return 0, false
}

func (c *Conn) keysymsLocked() (*keysymCache, error) {
	c.mu.Lock()
	cached := c.keysyms
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	ks, err := c.loadKeysyms()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.keysyms = ks
	c.mu.Unlock()
	return ks, nil
}
