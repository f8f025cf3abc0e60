package tray_test

import (
	"testing"

	"cardinal/internal/cfg"
	"cardinal/internal/log"
	"cardinal/internal/tray"
	"cardinal/internal/x11"

	"github.com/jezek/xgb/xproto"
)

// fakeConn records sent messages and serves atoms from a fixed table.
type fakeConn struct {
	owner x11.Xid
	next  x11.Xid
	sent  []x11.ClientMessage
}

func (f *fakeConn) Atom(name string) (xproto.Atom, error) {
	return xproto.Atom(1000 + len(name)), nil
}

func (f *fakeConn) RootWindow() x11.Xid { return 1 }

func (f *fakeConn) CreateWindow() (x11.Xid, error) {
	f.next++
	return 500 + f.next, nil
}

func (f *fakeConn) GetSelectionOwner(name string) (x11.Xid, error) {
	return f.owner, nil
}

func (f *fakeConn) SetSelectionOwner(win x11.Xid, name string) error {
	f.owner = win
	return nil
}

func (f *fakeConn) SendClientMessage(msg x11.ClientMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func newTray(t *testing.T, conf cfg.Tray) (*tray.Tray, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	logger := log.NewLogger(log.ERROR)
	tr := tray.New(conn, conf, &logger)
	if err := tr.Acquire(); err != nil {
		t.Fatal(err)
	}
	return tr, conn
}

func dockRequest(t *testing.T, icon uint32) x11.ClientMessage {
	t.Helper()
	msg, err := x11.NewClientMessage(
		1,
		x11.NoEventMask,
		"_NET_SYSTEM_TRAY_OPCODE",
		[]uint32{0, 0, icon, 0, 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

func TestAcquireAnnouncesOwnership(t *testing.T) {
	tr, conn := newTray(t, cfg.Tray{})
	if tr.Host() == 0 {
		t.Fatal("no selection window")
	}
	if conn.owner != tr.Host() {
		t.Errorf("selection owner = %d, want %d", conn.owner, tr.Host())
	}
	if len(conn.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(conn.sent))
	}
	msg := conn.sent[0]
	if msg.DType != "MANAGER" || msg.ID != 1 {
		t.Errorf("announcement = %+v", msg)
	}
	if msg.Data()[2] != uint32(tr.Host()) {
		t.Errorf("announcement carries window %d, want %d", msg.Data()[2], tr.Host())
	}
}

func TestAcquireRefusesOwnedSelection(t *testing.T) {
	conn := &fakeConn{owner: 99}
	logger := log.NewLogger(log.ERROR)
	tr := tray.New(conn, cfg.Tray{}, &logger)
	if err := tr.Acquire(); err == nil {
		t.Error("expected error for owned selection")
	}
}

func TestDockSendsXEmbedNotify(t *testing.T) {
	tr, conn := newTray(t, cfg.Tray{ActivateOnDock: true})
	if err := tr.Handle(dockRequest(t, 77)); err != nil {
		t.Fatal(err)
	}
	if len(tr.Icons()) != 1 || tr.Icons()[0] != 77 {
		t.Fatalf("icons = %v, want [77]", tr.Icons())
	}
	sent := conn.sent[1:] // skip the MANAGER announcement
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want notify and activate", len(sent))
	}
	for i, opcode := range []uint32{0, 1} {
		msg := sent[i]
		if msg.DType != "_XEMBED" || msg.ID != 77 {
			t.Errorf("message %d = %+v", i, msg)
		}
		if msg.Data()[1] != opcode {
			t.Errorf("message %d opcode = %d, want %d", i, msg.Data()[1], opcode)
		}
		if msg.Data()[3] != uint32(tr.Host()) {
			t.Errorf("message %d embedder = %d, want %d", i, msg.Data()[3], tr.Host())
		}
	}
}

func TestDockIsIdempotent(t *testing.T) {
	tr, conn := newTray(t, cfg.Tray{})
	if err := tr.Handle(dockRequest(t, 77)); err != nil {
		t.Fatal(err)
	}
	before := len(conn.sent)
	if err := tr.Handle(dockRequest(t, 77)); err != nil {
		t.Fatal(err)
	}
	if len(conn.sent) != before {
		t.Error("repeated dock request sent more messages")
	}
}

func TestEnterFocusesIcon(t *testing.T) {
	tr, conn := newTray(t, cfg.Tray{})
	if err := tr.Handle(dockRequest(t, 77)); err != nil {
		t.Fatal(err)
	}
	before := len(conn.sent)

	// Pointer entering some unrelated window does nothing.
	if err := tr.Handle(x11.Enter{PointerChange: x11.PointerChange{Window: 5}}); err != nil {
		t.Fatal(err)
	}
	if len(conn.sent) != before {
		t.Fatal("unrelated enter sent a message")
	}

	if err := tr.Handle(x11.Enter{PointerChange: x11.PointerChange{Window: 77}}); err != nil {
		t.Fatal(err)
	}
	msg := conn.sent[len(conn.sent)-1]
	if msg.ID != 77 || msg.Data()[1] != 4 {
		t.Errorf("focus message = %+v", msg)
	}
}

func TestDestroyUndocksIcon(t *testing.T) {
	tr, _ := newTray(t, cfg.Tray{})
	if err := tr.Handle(dockRequest(t, 77)); err != nil {
		t.Fatal(err)
	}
	if err := tr.Handle(x11.DestroyNotify{Window: 77}); err != nil {
		t.Fatal(err)
	}
	if len(tr.Icons()) != 0 {
		t.Errorf("icons = %v, want none", tr.Icons())
	}
}

func TestSetModal(t *testing.T) {
	tr, conn := newTray(t, cfg.Tray{})
	if err := tr.Handle(dockRequest(t, 77)); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetModal(); err != nil {
		t.Fatal(err)
	}
	msg := conn.sent[len(conn.sent)-1]
	if msg.ID != 77 || msg.Data()[1] != 10 {
		t.Errorf("modality message = %+v", msg)
	}
}
