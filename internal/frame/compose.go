package frame

import "github.com/pekwm/pekwm-sub002/internal/wo"

// AttachClient appends a client handle to the tab strip and makes it
// active, per spec.md §4.4 "Attach/detach": "Attaching a client to a frame
// appends it to the tab order and activates it."
func (f *Frame) AttachClient(h wo.Handle) {
	for _, c := range f.clients {
		if c == h {
			return
		}
	}
	f.clients = append(f.clients, h)
	f.active = len(f.clients) - 1
}

// AttachClientAt inserts h at position idx in the tab strip without
// activating it: the client that was active stays active. An out-of-range
// idx appends.
func (f *Frame) AttachClientAt(h wo.Handle, idx int) {
	for _, c := range f.clients {
		if c == h {
			return
		}
	}
	if idx < 0 || idx > len(f.clients) {
		idx = len(f.clients)
	}
	n := len(f.clients)
	f.clients = append(f.clients, wo.Handle{})
	copy(f.clients[idx+1:], f.clients[idx:])
	f.clients[idx] = h
	if n > 0 && idx <= f.active {
		f.active++
	}
}

// DetachClient removes a client from the tab strip. If it was active, the
// next client to the left becomes active, or the first remaining client
// if none is to the left (spec.md §4.4 "Detaching the active client
// activates its left neighbor, wrapping to the first remaining client").
// Returns true if the frame is now empty.
func (f *Frame) DetachClient(h wo.Handle) (empty bool) {
	idx := -1
	for i, c := range f.clients {
		if c == h {
			idx = i
			break
		}
	}
	if idx == -1 {
		return len(f.clients) == 0
	}
	f.clients = append(f.clients[:idx], f.clients[idx+1:]...)
	if len(f.clients) == 0 {
		f.active = 0
		return true
	}
	if f.active > idx {
		f.active--
	} else if f.active == idx {
		if f.active > 0 {
			f.active--
		}
	}
	if f.active >= len(f.clients) {
		f.active = len(f.clients) - 1
	}
	return false
}

// ActivateClient makes h the visible tab if present, returning whether it
// was found.
func (f *Frame) ActivateClient(h wo.Handle) bool {
	for i, c := range f.clients {
		if c == h {
			f.active = i
			return true
		}
	}
	return false
}

// ActivateNext/ActivatePrev cycle the active tab, wrapping, per spec.md
// §4.4 "Next/prev client in frame" action kinds.
func (f *Frame) ActivateNext() {
	if len(f.clients) == 0 {
		return
	}
	f.active = (f.active + 1) % len(f.clients)
}

func (f *Frame) ActivatePrev() {
	if len(f.clients) == 0 {
		return
	}
	f.active = (f.active - 1 + len(f.clients)) % len(f.clients)
}
