package x11

// Xid is an opaque identifier for a window or other drawable on the X
// server. The server owns identity; this package only carries the value.
type Xid uint32

// Point is a screen coordinate.
type Point struct {
	X int16
	Y int16
}

// Region is a rectangle given by its top-left corner and size.
type Region struct {
	X int16
	Y int16
	W uint16
	H uint16
}

// XEvent is a normalized X event, independent of the backend that produced
// it. The set of variants is closed: all of them live in this package and
// all of them are plain comparable values, so two events built from the
// same fields compare equal with == and hash identically as map keys.
//
// Exactly one variant is active per value; dispatch with a type switch.
type XEvent interface {
	xevent()
}

// ConfigureEvent describes a change (or requested change) to a window's
// geometry.
type ConfigureEvent struct {
	Window Xid
	Region Region
	// IsRoot is true when the event concerns the root window, which policy
	// code must treat differently from ordinary client windows.
	IsRoot bool
}

// ConfigureNotify reports that a window's geometry has changed.
type ConfigureNotify struct{ ConfigureEvent }

// ConfigureRequest reports that a client asked to be moved or resized.
type ConfigureRequest struct{ ConfigureEvent }

// PointerChange describes the pointer crossing a window boundary. Both the
// absolute and the window-relative coordinates are carried as generated:
// the window may have moved between event generation and handling, so
// neither can be derived from the other.
type PointerChange struct {
	Window Xid
	Abs    Point // relative to the root window
	Rel    Point // relative to the window's own origin
}

// Enter reports the pointer entering a window.
type Enter struct{ PointerChange }

// Leave reports the pointer leaving a window.
type Leave struct{ PointerChange }

// ExposeEvent reports that part of a window became visible and needs a
// repaint.
type ExposeEvent struct {
	Window Xid
	Region Region
	// Count is the number of further Expose events already queued for the
	// same repaint. Zero marks the last in the batch, which is the point to
	// coalesce redraw work.
	Count int
}

// DestroyNotify reports that a window has been destroyed.
type DestroyNotify struct {
	Window Xid
}

// KeyPress reports a grabbed key chord being entered.
type KeyPress struct {
	Key Key
}

// MapRequest reports a window asking to be mapped onto the screen.
type MapRequest struct {
	Window Xid
	// Manage is true when the window wants to be managed, i.e. it did not
	// set the override-redirect attribute.
	Manage bool
}

// MouseEvent reports a button press, button release or pointer motion.
type MouseEvent struct {
	Window Xid
	State  InputState
	Button uint8 // zero for pointer motion
	Abs    Point
	Mod    Keymod
}

// PropertyEvent reports a property change on a window. The property is
// identified by its resolved atom name rather than the raw atom number.
type PropertyEvent struct {
	Window Xid
	Atom   string
	IsRoot bool
}

// RandrNotify reports a RandR change (outputs added, resolution change).
type RandrNotify struct{}

// ScreenChange reports that the screen configuration has changed.
type ScreenChange struct{}

func (ClientMessage) xevent()    {}
func (ConfigureNotify) xevent()  {}
func (ConfigureRequest) xevent() {}
func (Enter) xevent()            {}
func (Leave) xevent()            {}
func (ExposeEvent) xevent()      {}
func (DestroyNotify) xevent()    {}
func (KeyPress) xevent()         {}
func (MapRequest) xevent()       {}
func (MouseEvent) xevent()       {}
func (PropertyEvent) xevent()    {}
func (RandrNotify) xevent()      {}
func (ScreenChange) xevent()     {}
