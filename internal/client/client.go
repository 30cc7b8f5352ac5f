// Package client implements spec.md §3 "Client": one managed top-level
// application window. It is grounded on funkycode-marwind's client struct
// embedded in wm/frame.go's frame{client *client} and manager/manager.go's
// container.Client usage (Window(), title, hints), generalized from "one
// window field" to the full ICCCM/EWMH surface spec.md §3 requires.
package client

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

// DenyMask is the cfg-deny bitmask spec.md §3 "A cfg-deny mask" and §9
// describe: per-client veto bits forbidding certain state transitions,
// populated from autoproperties.
type DenyMask uint32

const (
	DenyStacking DenyMask = 1 << iota
	DenyActiveWindow
	DenyStateFullscreen
	DenyStateMaximizedHorz
	DenyStateMaximizedVert
	DenyStateShaded
	DenyStateSticky
	DenyIconify
	DenyClose
	DenyResize
	DenyMove
)

func (m DenyMask) Has(f DenyMask) bool { return m&f != 0 }

// ClassHint is WM_CLASS (spec.md §3 "Class-hint (instance, class)").
type ClassHint struct {
	Instance, Class string
}

// SizeHints mirrors the subset of ICCCM WM_SIZE_HINTS spec.md §4.3 "Size
// increments and constraints" needs for the geometry normalizer.
type SizeHints struct {
	HasMin, HasMax, HasBase, HasInc, HasAspect, HasGravity bool

	MinWidth, MinHeight   uint32
	MaxWidth, MaxHeight   uint32
	BaseWidth, BaseHeight uint32
	WidthInc, HeightInc   uint32
	MinAspect, MaxAspect  float64
	Gravity               geom.Gravity
}

// FromICCCM converts an xgbutil icccm.NormalHints reply into SizeHints,
// defaulting width/height increments to 1 (spec.md §8 testable property 3
// phrases the increment law in terms of width_inc/height_inc "≠ 1").
func FromICCCM(h *icccm.NormalHints) SizeHints {
	sh := SizeHints{WidthInc: 1, HeightInc: 1}
	if h == nil {
		return sh
	}
	const (
		flagPMinSize   = 1 << 4
		flagPMaxSize   = 1 << 5
		flagPResizeInc = 1 << 6
		flagPAspect    = 1 << 7
		flagPBaseSize  = 1 << 8
		flagPWinGrav   = 1 << 9
	)
	if h.Flags&flagPMinSize != 0 {
		sh.HasMin = true
		sh.MinWidth, sh.MinHeight = h.MinWidth, h.MinHeight
	}
	if h.Flags&flagPMaxSize != 0 {
		sh.HasMax = true
		sh.MaxWidth, sh.MaxHeight = h.MaxWidth, h.MaxHeight
	}
	if h.Flags&flagPBaseSize != 0 {
		sh.HasBase = true
		sh.BaseWidth, sh.BaseHeight = h.BaseWidth, h.BaseHeight
	}
	if h.Flags&flagPResizeInc != 0 && h.WidthInc > 0 && h.HeightInc > 0 {
		sh.HasInc = true
		sh.WidthInc, sh.HeightInc = h.WidthInc, h.HeightInc
	}
	if h.Flags&flagPAspect != 0 && h.MinAspectDen > 0 && h.MaxAspectDen > 0 {
		sh.HasAspect = true
		sh.MinAspect = float64(h.MinAspectNum) / float64(h.MinAspectDen)
		sh.MaxAspect = float64(h.MaxAspectNum) / float64(h.MaxAspectDen)
	}
	if h.Flags&flagPWinGrav != 0 {
		sh.HasGravity = true
		sh.Gravity = geom.Gravity(h.WinGravity)
	}
	return sh
}

// Client is one managed top-level application window (spec.md §3).
type Client struct {
	wo.Base

	Class ClassHint
	Role  string

	titleUser string // user-set title override
	titleReal string // the application's own _NET_WM_NAME/WM_NAME

	Hints     SizeHints
	InputHint bool // WM_HINTS input flag
	GroupLeader xproto.Window

	transientFor  wo.Handle
	transientKids []wo.Handle

	configureLock int // spec.md §3 "Configure-request lock", §5

	Strut geom.Strut

	FrameID    uint32 // spec.md §3 "Pekwm-assigned frame-id"
	FrameOrder uint32 // within-frame order, persisted for restart

	Deny DenyMask

	frame wo.Handle // back-reference to the owning frame's WO handle

	attentionRequested bool
	createdAt          time.Time
}

// New constructs a Client around an already-reparentable X11 window. The
// caller (internal/root's create path) is responsible for registering it
// with a wo.Registry and wiring Handle via SetHandle.
func New(win xproto.Window) *Client {
	return &Client{
		Base:      wo.NewBase(wo.TypeClient, win),
		Hints:     SizeHints{WidthInc: 1, HeightInc: 1},
		InputHint: true,
		createdAt: time.Now(),
	}
}

// Title returns the user override if set, else the application's real
// title (spec.md §3 "title (user-set and real)").
func (c *Client) Title() string {
	if c.titleUser != "" {
		return c.titleUser
	}
	return c.titleReal
}

func (c *Client) SetRealTitle(t string) { c.titleReal = t }
func (c *Client) SetUserTitle(t string) { c.titleUser = t }
func (c *Client) RealTitle() string     { return c.titleReal }

// TransientFor returns the handle of the client this one is transient for,
// or the zero Handle if none.
func (c *Client) TransientFor() wo.Handle { return c.transientFor }
func (c *Client) SetTransientFor(h wo.Handle) { c.transientFor = h }

func (c *Client) TransientChildren() []wo.Handle { return c.transientKids }
func (c *Client) AddTransientChild(h wo.Handle) {
	c.transientKids = append(c.transientKids, h)
}
func (c *Client) RemoveTransientChild(h wo.Handle) {
	for i, k := range c.transientKids {
		if k == h {
			c.transientKids = append(c.transientKids[:i], c.transientKids[i+1:]...)
			return
		}
	}
}

// Frame returns the handle of the owning frame.
func (c *Client) Frame() wo.Handle      { return c.frame }
func (c *Client) SetFrame(h wo.Handle)  { c.frame = h }

// LockConfigure increments the configure-request lock counter: while
// nonzero, synthetic ConfigureNotify messages are suppressed and coalesced
// (spec.md §3, §5 "Configure-request lock").
func (c *Client) LockConfigure()   { c.configureLock++ }
func (c *Client) UnlockConfigure() {
	if c.configureLock > 0 {
		c.configureLock--
	}
}
func (c *Client) ConfigureLocked() bool { return c.configureLock > 0 }

// SetAttention flips the attention/urgency flag (§D "Attention/urgency
// counter per frame" supplemented feature; the per-frame counter itself
// lives on frame.Frame and is driven by this method via the owning frame).
func (c *Client) SetAttention(v bool) { c.attentionRequested = v }
func (c *Client) Attention() bool     { return c.attentionRequested }

// TransientChainVisited walks the transient-for chain starting at this
// client looking for a cycle, per spec.md §9 "Cycles": "the raise operation
// must detect cycles with a visited set and bail after the first repeat."
// resolve must upgrade a wo.Handle to a *Client or report ok=false.
func TransientChainVisited(start *Client, resolve func(wo.Handle) (*Client, bool)) []wo.Handle {
	visited := map[wo.Handle]bool{start.Handle(): true}
	var chain []wo.Handle
	cur := start
	for {
		h := cur.TransientFor()
		if h.Zero() || visited[h] {
			break
		}
		next, ok := resolve(h)
		if !ok {
			break
		}
		visited[h] = true
		chain = append(chain, h)
		cur = next
	}
	return chain
}
