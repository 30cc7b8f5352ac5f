package handler

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
	"github.com/pekwm/pekwm-sub002/internal/x11"
)

// GroupingDrag is the "Grouping drag" modal handler (spec.md §4.8 table
// row 3): records the pointer position on every motion (no status label is
// drawn) and, on release, either attaches the dragged client into the
// frame under the pointer or spawns a new single-client frame at the drop
// point.
//
// Open question resolved (spec.md §9 "the exact behavior of GroupingDrag
// when the drop target has a pending fullscreen transition is
// underspecified", decided in SPEC_FULL.md section E): a drop target for
// which the pendingFS callback reports true rejects the attach and falls back to
// creating a new frame, since attaching into a frame mid-transition would
// leave the tab strip's geometry assumptions (ClientGeometry equals outer
// minus decor) momentarily false.
type GroupingDrag struct {
	sourceClient wo.Handle
	resolveFrame func(wo.Handle) (*frame.Frame, bool)
	frameAt      func(x, y int32) (*frame.Frame, bool)
	pendingFS    func(*frame.Frame) bool

	lastX, lastY int32

	OnAttach   func(source wo.Handle, target *frame.Frame)
	OnNewFrame func(source wo.Handle, at geom.Geometry)

	conn *x11.Conn
}

func NewGroupingDrag(source wo.Handle, resolveFrame func(wo.Handle) (*frame.Frame, bool), frameAt func(x, y int32) (*frame.Frame, bool), pendingFS func(*frame.Frame) bool) *GroupingDrag {
	return &GroupingDrag{sourceClient: source, resolveFrame: resolveFrame, frameAt: frameAt, pendingFS: pendingFS}
}

func (g *GroupingDrag) Init(conn *x11.Conn) error {
	g.conn = conn
	cur, err := conn.Cursor(x11.CursorFleur)
	if err != nil {
		return err
	}
	return conn.GrabPointer(xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion, cur)
}

func (g *GroupingDrag) HandleButtonPress(xproto.ButtonPressEvent) Result { return Processed }

func (g *GroupingDrag) HandleMotionNotify(ev xproto.MotionNotifyEvent) Result {
	g.lastX, g.lastY = ev.RootX, ev.RootY
	return Processed
}

func (g *GroupingDrag) HandleButtonRelease(xproto.ButtonReleaseEvent) Result {
	g.conn.UngrabPointer()

	target, ok := g.frameAt(g.lastX, g.lastY)
	if ok && g.pendingFS != nil && g.pendingFS(target) {
		// decided open question: reject the drop onto a frame mid-fullscreen
		// transition rather than attach into transient geometry.
		ok = false
	}

	if ok && g.OnAttach != nil {
		g.OnAttach(g.sourceClient, target)
	} else if g.OnNewFrame != nil {
		g.OnNewFrame(g.sourceClient, geom.Geometry{X: g.lastX, Y: g.lastY, Width: 1, Height: 1})
	}
	return StopProcessed
}

func (g *GroupingDrag) HandleKeyPress(xproto.KeyPressEvent) Result {
	g.conn.UngrabPointer()
	return StopProcessed
}

func (g *GroupingDrag) HandleExpose(xproto.ExposeEvent) Result { return Skip }
