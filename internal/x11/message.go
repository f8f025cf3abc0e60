package x11

import "github.com/jezek/xgb/xproto"

// Atom names used when building client messages.
const (
	manager         = "MANAGER"
	netSystemTrayS0 = "_NET_SYSTEM_TRAY_S0"
	wmDeleteWindow  = "WM_DELETE_WINDOW"
	wmProtocols     = "WM_PROTOCOLS"
	wmTakeFocus     = "WM_TAKE_FOCUS"
	xEmbed          = "_XEMBED"
)

// XEmbed opcodes and the protocol revision implemented.
// See: https://specifications.freedesktop.org/xembed-spec/xembed-spec-latest.html
const (
	xEmbedNotify         = 0
	xEmbedWindowActivate = 1
	xEmbedFocusIn        = 4
	xEmbedModalityOn     = 10
	xEmbedVersion        = 0
)

// AtomQuerier resolves atom names to their numeric identifiers. Resolution
// may block (it usually costs a server round-trip on a cache miss) and may
// fail; this package never interns or caches atoms itself.
type AtomQuerier interface {
	Atom(name string) (xproto.Atom, error)
}

// ClientEventMask selects the event mask attached when a client message is
// relayed to the server.
type ClientEventMask int

const (
	// NoEventMask delivers the message to the destination window only. Any
	// client must be able to receive it.
	NoEventMask ClientEventMask = iota
	// SubstructureNotify propagates the message to clients listening for
	// hierarchy changes on the destination window.
	SubstructureNotify
)

func (m ClientEventMask) String() string {
	if m == SubstructureNotify {
		return "SubstructureNotify"
	}
	return "NoEventMask"
}

// eventMask returns the xproto mask bits used on the send path.
func (m ClientEventMask) eventMask() uint32 {
	if m == SubstructureNotify {
		return xproto.EventMaskSubstructureNotify
	}
	return xproto.EventMaskNoEvent
}

// ClientMessage is a wire-ready client message: a destination window, a
// send mask, a type name and exactly five 32-bit data words. The word count
// is the wire contract of the X client-message format and is enforced at
// construction; values of this type always satisfy it.
type ClientMessage struct {
	ID    Xid
	Mask  ClientEventMask
	DType string
	data  [5]uint32
}

// Data returns the five data words of the message, in order.
func (m ClientMessage) Data() []uint32 {
	return m.data[:]
}

// NewClientMessage validates that data holds exactly five words and builds
// a ClientMessage from them. It is the only exported general-purpose
// constructor; it fails with an InvalidDataError carrying the offending
// length otherwise.
func NewClientMessage(id Xid, mask ClientEventMask, dtype string, data []uint32) (ClientMessage, error) {
	if len(data) != 5 {
		return ClientMessage{}, &InvalidDataError{Len: len(data)}
	}
	var words [5]uint32
	copy(words[:], data)
	return makeClientMessage(id, mask, dtype, words), nil
}

// makeClientMessage builds a ClientMessage without validation. Callers
// guarantee the five-word layout by construction; keeping this unexported
// keeps the invariant enforced at the package boundary.
func makeClientMessage(id Xid, mask ClientEventMask, dtype string, data [5]uint32) ClientMessage {
	return ClientMessage{
		ID:    id,
		Mask:  mask,
		DType: dtype,
		data:  data,
	}
}

// ClientMessageKind is the semantic intent behind a client message ("tell
// this client to close") as opposed to its wire form. Kinds never touch the
// wire directly; AsMessage lowers them into a concrete ClientMessage.
type ClientMessageKind struct {
	kind  messageKind
	id    Xid
	other Xid
}

type messageKind int

const (
	kindDeleteWindow messageKind = iota
	kindTakeFocus
	kindTakeSystrayOwnership
	kindXEmbedFocusIn
	kindXEmbedModalityOn
	kindXEmbedNotify
	kindXEmbedWindowActivate
)

// DeleteWindow asks the client owning the window to close it.
func DeleteWindow(id Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindDeleteWindow, id: id}
}

// TakeFocus asks the client owning the window to take input focus.
func TakeFocus(id Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindTakeFocus, id: id}
}

// TakeSystrayOwnership announces on the root window that systray is now
// the system tray selection owner.
func TakeSystrayOwnership(root, systray Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindTakeSystrayOwnership, id: root, other: systray}
}

// XEmbedFocusIn informs an embedded window that it has gained focus.
func XEmbedFocusIn(id, embedder Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindXEmbedFocusIn, id: id, other: embedder}
}

// XEmbedModalityOn informs an embedded window that it is blocked by a
// modal dialog.
func XEmbedModalityOn(id, embedder Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindXEmbedModalityOn, id: id, other: embedder}
}

// XEmbedNotify informs a window that it is being embedded.
func XEmbedNotify(id, embedder Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindXEmbedNotify, id: id, other: embedder}
}

// XEmbedWindowActivate informs an embedded window that it is now active.
func XEmbedWindowActivate(id, embedder Xid) ClientMessageKind {
	return ClientMessageKind{kind: kindXEmbedWindowActivate, id: id, other: embedder}
}

// AsMessage lowers the kind into a wire-ready ClientMessage, resolving any
// atoms it needs through q. The only failure mode is a failed atom
// resolution; on error no message is produced.
func (k ClientMessageKind) AsMessage(q AtomQuerier) (ClientMessage, error) {
	switch k.kind {
	case kindDeleteWindow:
		return protocolMessage(q, k.id, wmDeleteWindow)
	case kindTakeFocus:
		return protocolMessage(q, k.id, wmTakeFocus)
	case kindTakeSystrayOwnership:
		systray, err := q.Atom(netSystemTrayS0)
		if err != nil {
			return ClientMessage{}, &AtomError{Name: netSystemTrayS0, Cause: err}
		}
		// Word 0 is a timestamp which the server fills in on MANAGER
		// broadcasts; it is left as zero here.
		data := [5]uint32{0, uint32(systray), uint32(k.other), 0, 0}
		return makeClientMessage(k.id, SubstructureNotify, manager, data), nil
	case kindXEmbedFocusIn:
		return xEmbedMessage(k.id, k.other, xEmbedFocusIn), nil
	case kindXEmbedModalityOn:
		return xEmbedMessage(k.id, k.other, xEmbedModalityOn), nil
	case kindXEmbedNotify:
		return xEmbedMessage(k.id, k.other, xEmbedNotify), nil
	default:
		return xEmbedMessage(k.id, k.other, xEmbedWindowActivate), nil
	}
}

// protocolMessage builds a WM_PROTOCOLS message carrying the resolved id of
// the specific protocol atom as its first data word.
func protocolMessage(q AtomQuerier, id Xid, name string) (ClientMessage, error) {
	atom, err := q.Atom(name)
	if err != nil {
		return ClientMessage{}, &AtomError{Name: name, Cause: err}
	}
	data := [5]uint32{uint32(atom), 0, 0, 0, 0}
	return makeClientMessage(id, NoEventMask, wmProtocols, data), nil
}

// xEmbedMessage builds one of the four XEmbed notifications.
func xEmbedMessage(id, embedder Xid, opcode uint32) ClientMessage {
	data := [5]uint32{0, opcode, 0, uint32(embedder), xEmbedVersion}
	return makeClientMessage(id, SubstructureNotify, xEmbed, data)
}
