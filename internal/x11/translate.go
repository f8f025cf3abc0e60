package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// lookup answers the queries translation cannot derive from the raw event
// alone. The live implementation costs a server round-trip on cache misses;
// tests substitute a fake.
type lookup interface {
	atomName(atom xproto.Atom) (string, error)
	overrideRedirect(win xproto.Window) (bool, error)
}

// ToXEvent translates a raw backend event into its normalized form. A nil
// event with a nil error means the event type is intentionally ignored.
// Translation is lossless for the carried fields and has no side effects
// beyond atom-name lookups through the connection's cache.
func (c *Client) ToXEvent(raw xgb.Event) (XEvent, error) {
	switch evt := raw.(type) {
	case xproto.ClientMessageEvent:
		name, err := c.look.atomName(evt.Type)
		if err != nil {
			return nil, err
		}
		// The wire event does not carry the sender's mask; the mask only
		// matters on the send path.
		var words [5]uint32
		copy(words[:], evt.Data.Data32[:])
		return makeClientMessage(Xid(evt.Window), NoEventMask, name, words), nil
	case xproto.ConfigureNotifyEvent:
		return ConfigureNotify{ConfigureEvent{
			Window: Xid(evt.Window),
			Region: Region{X: evt.X, Y: evt.Y, W: evt.Width, H: evt.Height},
			IsRoot: evt.Window == c.root,
		}}, nil
	case xproto.ConfigureRequestEvent:
		return ConfigureRequest{ConfigureEvent{
			Window: Xid(evt.Window),
			Region: Region{X: evt.X, Y: evt.Y, W: evt.Width, H: evt.Height},
			IsRoot: evt.Window == c.root,
		}}, nil
	case xproto.EnterNotifyEvent:
		return Enter{pointerChange(evt)}, nil
	case xproto.LeaveNotifyEvent:
		return Leave{pointerChange(xproto.EnterNotifyEvent(evt))}, nil
	case xproto.ExposeEvent:
		return ExposeEvent{
			Window: Xid(evt.Window),
			Region: Region{X: int16(evt.X), Y: int16(evt.Y), W: evt.Width, H: evt.Height},
			Count:  int(evt.Count),
		}, nil
	case xproto.DestroyNotifyEvent:
		return DestroyNotify{Window: Xid(evt.Window)}, nil
	case xproto.KeyPressEvent:
		return KeyPress{Key: Key{Code: evt.Detail, Mod: Keymod(evt.State)}}, nil
	case xproto.MapRequestEvent:
		override, err := c.look.overrideRedirect(evt.Window)
		if err != nil {
			return nil, err
		}
		return MapRequest{Window: Xid(evt.Window), Manage: !override}, nil
	case xproto.ButtonPressEvent:
		return mouseEvent(evt, StateDown), nil
	case xproto.ButtonReleaseEvent:
		return mouseEvent(xproto.ButtonPressEvent(evt), StateUp), nil
	case xproto.MotionNotifyEvent:
		return MouseEvent{
			Window: Xid(evt.Event),
			State:  StateMotion,
			Abs:    Point{X: evt.RootX, Y: evt.RootY},
			Mod:    Keymod(evt.State),
		}, nil
	case xproto.PropertyNotifyEvent:
		name, err := c.look.atomName(evt.Atom)
		if err != nil {
			return nil, err
		}
		return PropertyEvent{
			Window: Xid(evt.Window),
			Atom:   name,
			IsRoot: evt.Window == c.root,
		}, nil
	case randr.NotifyEvent:
		// RandR events only count when the extension was set up on this
		// connection; anything else is a stray from a bad event number.
		if !c.randr {
			return nil, nil
		}
		return RandrNotify{}, nil
	case randr.ScreenChangeNotifyEvent:
		if !c.randr {
			return nil, nil
		}
		return ScreenChange{}, nil
	default:
		return nil, nil
	}
}

func pointerChange(evt xproto.EnterNotifyEvent) PointerChange {
	return PointerChange{
		Window: Xid(evt.Event),
		Abs:    Point{X: evt.RootX, Y: evt.RootY},
		Rel:    Point{X: evt.EventX, Y: evt.EventY},
	}
}

func mouseEvent(evt xproto.ButtonPressEvent, state InputState) MouseEvent {
	return MouseEvent{
		Window: Xid(evt.Event),
		State:  state,
		Button: uint8(evt.Detail),
		Abs:    Point{X: evt.RootX, Y: evt.RootY},
		Mod:    Keymod(evt.State),
	}
}
