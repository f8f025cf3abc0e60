// Package x11 provides a backend-independent model of X events and a
// validated builder for the client messages used by window-manager
// protocols (ICCCM/EWMH hints, XEmbed), along with a client that translates
// raw X events into that model and relays built messages to the server.
package x11

import (
	"encoding/binary"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// Atom names used by the client.
const (
	netActiveWindow = "_NET_ACTIVE_WINDOW"
	netWmPid        = "_NET_WM_PID"
	wmClass         = "WM_CLASS"
	wmName          = "WM_NAME"
)

// Event masks
const (
	maskRoot uint32 = xproto.EventMaskPropertyChange |
		xproto.EventMaskSubstructureNotify

	maskRandr uint16 = randr.NotifyMaskScreenChange |
		randr.NotifyMaskCrtcChange |
		randr.NotifyMaskOutputChange
)

// rawEvent represents an event which is to be sent to another window.
type rawEvent interface {
	Bytes() []byte
}

// Client maintains a connection with the X server. It resolves atoms (it is
// the AtomQuerier used with ClientMessageKind.AsMessage), relays built
// client messages, and translates incoming events into XEvents.
type Client struct {
	atoms *atomCache
	conn  *xgb.Conn
	look  lookup
	root  xproto.Window

	// Whether the RandR extension was initialized on this connection.
	randr bool
}

// NewClient connects to the X server and subscribes to property and
// substructure changes on the root window.
func NewClient() (*Client, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	err = xproto.ChangeWindowAttributesChecked(
		conn,
		root,
		xproto.CwEventMask,
		[]uint32{maskRoot},
	).Check()
	if err != nil {
		conn.Close()
		return nil, err
	}
	c := &Client{
		atoms: newAtomCache(conn),
		conn:  conn,
		root:  root,
	}
	c.look = &serverLookup{atoms: c.atoms, conn: conn}
	// RandR is optional. Without it the connection still works; there are
	// just no RandrNotify/ScreenChange events.
	if err := randr.Init(conn); err == nil {
		c.randr = randr.SelectInputChecked(conn, root, maskRandr).Check() == nil
	}
	return c, nil
}

// Close closes the connection with the X server.
func (c *Client) Close() {
	c.conn.Close()
}

// Atom resolves an atom name to its identifier. It implements AtomQuerier.
func (c *Client) Atom(name string) (xproto.Atom, error) {
	return c.atoms.Get(name)
}

// RootWindow returns the ID of the root window.
func (c *Client) RootWindow() Xid {
	return Xid(c.root)
}

// Randr reports whether the RandR extension is active on this connection.
// Without it there are no RandrNotify or ScreenChange events.
func (c *Client) Randr() bool {
	return c.randr
}

// SendClientMessage relays a built client message to its destination
// window with the mask the message carries. The five-word payload is
// serialized as a 32-bit format client message.
func (c *Client) SendClientMessage(msg ClientMessage) error {
	typ, err := c.atoms.Get(msg.DType)
	if err != nil {
		return &AtomError{Name: msg.DType, Cause: err}
	}
	var words [5]uint32
	copy(words[:], msg.Data())
	evt := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(msg.ID),
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(words[:]),
	}
	return c.sendEvent(evt, msg.Mask.eventMask(), xproto.Window(msg.ID))
}

// CloseWindow asks the client owning the given window to close it
// gracefully via WM_DELETE_WINDOW.
func (c *Client) CloseWindow(win Xid) error {
	msg, err := DeleteWindow(win).AsMessage(c)
	if err != nil {
		return err
	}
	return c.SendClientMessage(msg)
}

// FocusWindow asks the client owning the given window to take input focus
// via WM_TAKE_FOCUS.
func (c *Client) FocusWindow(win Xid) error {
	msg, err := TakeFocus(win).AsMessage(c)
	if err != nil {
		return err
	}
	return c.SendClientMessage(msg)
}

// GetSelectionOwner returns the current owner of the named selection, or
// zero if it is unowned.
func (c *Client) GetSelectionOwner(name string) (Xid, error) {
	atom, err := c.atoms.Get(name)
	if err != nil {
		return 0, &AtomError{Name: name, Cause: err}
	}
	reply, err := xproto.GetSelectionOwner(c.conn, atom).Reply()
	if err != nil {
		return 0, err
	}
	return Xid(reply.Owner), nil
}

// SetSelectionOwner makes the given window the owner of the named
// selection.
func (c *Client) SetSelectionOwner(win Xid, name string) error {
	atom, err := c.atoms.Get(name)
	if err != nil {
		return &AtomError{Name: name, Cause: err}
	}
	return xproto.SetSelectionOwnerChecked(
		c.conn,
		xproto.Window(win),
		atom,
		xproto.TimeCurrentTime,
	).Check()
}

// CreateWindow creates a small unmapped helper window, as used for
// selection ownership.
func (c *Client) CreateWindow() (Xid, error) {
	win, err := xproto.NewWindowId(c.conn)
	if err != nil {
		return 0, err
	}
	screen := xproto.Setup(c.conn).DefaultScreen(c.conn)
	err = xproto.CreateWindowChecked(
		c.conn,
		screen.RootDepth,
		win,
		c.root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		0,
		[]uint32{},
	).Check()
	if err != nil {
		return 0, err
	}
	return Xid(win), nil
}

// GetActiveWindow returns the currently focused window, or zero if the
// window manager does not expose one.
func (c *Client) GetActiveWindow() (Xid, error) {
	win, err := c.getPropertyInt(c.root, netActiveWindow, xproto.AtomWindow)
	if err != nil {
		if err == errInvalidLength {
			return 0, nil
		}
		return 0, err
	}
	return Xid(win), nil
}

// GetWindowClass returns the class of the given window.
func (c *Client) GetWindowClass(win Xid) (string, error) {
	class, err := c.getPropertyString(xproto.Window(win), wmClass)
	if err != nil {
		return "", err
	}
	// WM_CLASS holds two null-separated values. Take the first.
	return strings.Split(class, "\x00")[0], nil
}

// GetWindowPid returns the PID of the process that owns the given window.
func (c *Client) GetWindowPid(win Xid) (uint32, error) {
	return c.getPropertyInt(xproto.Window(win), netWmPid, xproto.AtomCardinal)
}

// GetWindowTitle returns the title of the given window.
func (c *Client) GetWindowTitle(win Xid) (string, error) {
	return c.getPropertyString(xproto.Window(win), wmName)
}

// getProperty retrieves a raw window property.
func (c *Client) getProperty(win xproto.Window, name string, typ xproto.Atom) ([]byte, error) {
	atom, err := c.atoms.Get(name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(
		c.conn,
		false,
		win,
		atom,
		typ,
		0,
		1024,
	).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// getPropertyInt retrieves a 32-bit window property.
func (c *Client) getPropertyInt(win xproto.Window, name string, typ xproto.Atom) (uint32, error) {
	reply, err := c.getProperty(win, name, typ)
	if err != nil {
		return 0, err
	}
	if len(reply) != 4 {
		return 0, errInvalidLength
	}
	return binary.LittleEndian.Uint32(reply), nil
}

// getPropertyString retrieves a string window property. The returned
// string may contain null bytes.
func (c *Client) getPropertyString(win xproto.Window, name string) (string, error) {
	reply, err := c.getProperty(win, name, xproto.AtomString)
	if err != nil {
		return "", err
	}
	return string(reply), nil
}

// serverLookup answers the translation lookups against the live connection.
type serverLookup struct {
	atoms *atomCache
	conn  *xgb.Conn
}

func (l *serverLookup) atomName(atom xproto.Atom) (string, error) {
	return l.atoms.Name(atom)
}

// overrideRedirect reports whether the given window set the
// override-redirect attribute, i.e. asked not to be managed.
func (l *serverLookup) overrideRedirect(win xproto.Window) (bool, error) {
	attrs, err := xproto.GetWindowAttributes(l.conn, win).Reply()
	if err != nil {
		return false, err
	}
	return attrs.OverrideRedirect, nil
}

// sendEvent sends an event to another window.
func (c *Client) sendEvent(evt rawEvent, mask uint32, win xproto.Window) error {
	return xproto.SendEventChecked(
		c.conn,
		true,
		win,
		mask,
		string(evt.Bytes()),
	).Check()
}
