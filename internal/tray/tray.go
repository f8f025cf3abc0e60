// Package tray implements a minimal system tray host speaking the
// freedesktop system tray protocol with XEmbed notifications.
// See: https://specifications.freedesktop.org/systemtray-spec/systemtray-spec-latest.html
package tray

import (
	"fmt"

	"cardinal/internal/cfg"
	"cardinal/internal/log"
	"cardinal/internal/x11"
)

const (
	selectionName = "_NET_SYSTEM_TRAY_S0"
	opcodeName    = "_NET_SYSTEM_TRAY_OPCODE"
)

// Opcodes carried in word 1 of a _NET_SYSTEM_TRAY_OPCODE message.
const (
	opRequestDock uint32 = iota
	opBeginMessage
	opCancelMessage
)

// Conn is the subset of the X client the tray host needs. Having it as an
// interface keeps the protocol logic testable with a fake connection.
type Conn interface {
	x11.AtomQuerier
	RootWindow() x11.Xid
	CreateWindow() (x11.Xid, error)
	GetSelectionOwner(name string) (x11.Xid, error)
	SetSelectionOwner(win x11.Xid, name string) error
	SendClientMessage(msg x11.ClientMessage) error
}

// Tray owns the system tray selection and manages docked icons.
type Tray struct {
	x      Conn
	conf   cfg.Tray
	logger *log.Logger
	host   x11.Xid
	icons  map[x11.Xid]struct{}
}

// New creates a tray host. Call Acquire before handling events.
func New(x Conn, conf cfg.Tray, logger *log.Logger) *Tray {
	return &Tray{
		x:      x,
		conf:   conf,
		logger: logger,
		icons:  make(map[x11.Xid]struct{}),
	}
}

// Host returns the selection window, or zero before Acquire.
func (t *Tray) Host() x11.Xid {
	return t.host
}

// Icons returns the currently docked icon windows.
func (t *Tray) Icons() []x11.Xid {
	icons := make([]x11.Xid, 0, len(t.icons))
	for icon := range t.icons {
		icons = append(icons, icon)
	}
	return icons
}

// Acquire takes ownership of the system tray selection and announces it on
// the root window so waiting clients start docking.
func (t *Tray) Acquire() error {
	owner, err := t.x.GetSelectionOwner(selectionName)
	if err != nil {
		return fmt.Errorf("query selection owner: %w", err)
	}
	if owner != 0 {
		return fmt.Errorf("selection %s already owned by %d", selectionName, owner)
	}
	host, err := t.x.CreateWindow()
	if err != nil {
		return fmt.Errorf("create selection window: %w", err)
	}
	if err := t.x.SetSelectionOwner(host, selectionName); err != nil {
		return fmt.Errorf("set selection owner: %w", err)
	}
	owner, err = t.x.GetSelectionOwner(selectionName)
	if err != nil {
		return fmt.Errorf("verify selection owner: %w", err)
	}
	if owner != host {
		return fmt.Errorf("selection %s grabbed by %d", selectionName, owner)
	}
	t.host = host

	msg, err := x11.TakeSystrayOwnership(t.x.RootWindow(), host).AsMessage(t.x)
	if err != nil {
		return err
	}
	if err := t.x.SendClientMessage(msg); err != nil {
		return fmt.Errorf("announce ownership: %w", err)
	}
	t.logger.Info("Acquired %s with window %d", selectionName, host)
	return nil
}

// Handle reacts to a single translated event: dock requests, pointer focus
// for docked icons and icon teardown. Unrelated events are ignored.
func (t *Tray) Handle(evt x11.XEvent) error {
	switch evt := evt.(type) {
	case x11.ClientMessage:
		if evt.DType != opcodeName {
			return nil
		}
		data := evt.Data()
		switch data[1] {
		case opRequestDock:
			return t.dock(x11.Xid(data[2]))
		case opBeginMessage, opCancelMessage:
			// Balloon messages are not rendered; acknowledge by ignoring.
			t.logger.Debug("Ignoring balloon message from %d", evt.ID)
		}
	case x11.Enter:
		if _, ok := t.icons[evt.Window]; ok {
			return t.notify(x11.XEmbedFocusIn(evt.Window, t.host))
		}
	case x11.DestroyNotify:
		if _, ok := t.icons[evt.Window]; ok {
			delete(t.icons, evt.Window)
			t.logger.Info("Icon %d undocked", evt.Window)
		}
	}
	return nil
}

// dock embeds a new icon window and notifies it per the XEmbed lifecycle.
func (t *Tray) dock(icon x11.Xid) error {
	if _, ok := t.icons[icon]; ok {
		return nil
	}
	if err := t.notify(x11.XEmbedNotify(icon, t.host)); err != nil {
		return err
	}
	t.icons[icon] = struct{}{}
	if t.conf.ActivateOnDock {
		if err := t.notify(x11.XEmbedWindowActivate(icon, t.host)); err != nil {
			return err
		}
	}
	t.logger.Info("Icon %d docked", icon)
	return nil
}

// SetModal tells every docked icon that the host is blocked by a modal
// dialog.
func (t *Tray) SetModal() error {
	for icon := range t.icons {
		if err := t.notify(x11.XEmbedModalityOn(icon, t.host)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tray) notify(kind x11.ClientMessageKind) error {
	msg, err := kind.AsMessage(t.x)
	if err != nil {
		return err
	}
	return t.x.SendClientMessage(msg)
}
