package x11_test

import (
	"errors"
	"testing"

	"cardinal/internal/x11"

	"github.com/jezek/xgb/xproto"
)

// fakeQuerier resolves atoms from a fixed table.
type fakeQuerier map[string]xproto.Atom

func (q fakeQuerier) Atom(name string) (xproto.Atom, error) {
	atom, ok := q[name]
	if !ok {
		return 0, errors.New("no such atom: " + name)
	}
	return atom, nil
}

var testAtoms = fakeQuerier{
	"WM_PROTOCOLS":        68,
	"WM_DELETE_WINDOW":    301,
	"WM_TAKE_FOCUS":       302,
	"MANAGER":             303,
	"_NET_SYSTEM_TRAY_S0": 304,
	"_XEMBED":             305,
}

func TestNewClientMessageLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 6, 7, 20} {
		data := make([]uint32, n)
		_, err := x11.NewClientMessage(100, x11.NoEventMask, "WM_PROTOCOLS", data)
		var invalid *x11.InvalidDataError
		if !errors.As(err, &invalid) {
			t.Fatalf("len %d: got %v, want InvalidDataError", n, err)
		}
		if invalid.Len != n {
			t.Errorf("len %d: error carries %d", n, invalid.Len)
		}
	}
}

func TestNewClientMessageValid(t *testing.T) {
	data := []uint32{5, 4, 3, 2, 1}
	msg, err := x11.NewClientMessage(100, x11.SubstructureNotify, "_XEMBED", data)
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID != 100 || msg.Mask != x11.SubstructureNotify || msg.DType != "_XEMBED" {
		t.Errorf("fields not preserved: %+v", msg)
	}
	got := msg.Data()
	for i, want := range data {
		if got[i] != want {
			t.Errorf("data[%d] = %d, want %d", i, got[i], want)
		}
	}
	// The message holds its own copy of the payload.
	data[0] = 99
	if msg.Data()[0] != 5 {
		t.Error("message data aliases caller slice")
	}
}

func TestProtocolMessages(t *testing.T) {
	cases := []struct {
		name string
		kind x11.ClientMessageKind
		atom uint32
	}{
		{"DeleteWindow", x11.DeleteWindow(21), 301},
		{"TakeFocus", x11.TakeFocus(21), 302},
	}
	for _, tc := range cases {
		msg, err := tc.kind.AsMessage(testAtoms)
		if err != nil {
			t.Fatalf("%s: %s", tc.name, err)
		}
		if msg.ID != 21 {
			t.Errorf("%s: id = %d, want 21", tc.name, msg.ID)
		}
		if msg.Mask != x11.NoEventMask {
			t.Errorf("%s: mask = %s, want NoEventMask", tc.name, msg.Mask)
		}
		if msg.DType != "WM_PROTOCOLS" {
			t.Errorf("%s: dtype = %s", tc.name, msg.DType)
		}
		data := msg.Data()
		if data[0] != tc.atom {
			t.Errorf("%s: data[0] = %d, want %d", tc.name, data[0], tc.atom)
		}
		for i := 1; i < 5; i++ {
			if data[i] != 0 {
				t.Errorf("%s: data[%d] = %d, want 0", tc.name, i, data[i])
			}
		}
	}
}

func TestTakeSystrayOwnership(t *testing.T) {
	msg, err := x11.TakeSystrayOwnership(1, 77).AsMessage(testAtoms)
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID != 1 {
		t.Errorf("message addressed to %d, want root (1)", msg.ID)
	}
	if msg.Mask != x11.SubstructureNotify {
		t.Errorf("mask = %s, want SubstructureNotify", msg.Mask)
	}
	if msg.DType != "MANAGER" {
		t.Errorf("dtype = %s, want MANAGER", msg.DType)
	}
	data := msg.Data()
	// Word 0 stays a zero timestamp placeholder.
	if data[0] != 0 {
		t.Errorf("data[0] = %d, want 0", data[0])
	}
	if data[1] != 304 {
		t.Errorf("data[1] = %d, want systray selection atom 304", data[1])
	}
	if data[2] != 77 {
		t.Errorf("data[2] = %d, want systray window 77", data[2])
	}
	if data[3] != 0 || data[4] != 0 {
		t.Errorf("data tail = %v, want zeros", data[3:])
	}
}

func TestXEmbedMessages(t *testing.T) {
	cases := []struct {
		name   string
		kind   x11.ClientMessageKind
		opcode uint32
	}{
		{"Notify", x11.XEmbedNotify(30, 40), 0},
		{"WindowActivate", x11.XEmbedWindowActivate(30, 40), 1},
		{"FocusIn", x11.XEmbedFocusIn(30, 40), 4},
		{"ModalityOn", x11.XEmbedModalityOn(30, 40), 10},
	}
	for _, tc := range cases {
		msg, err := tc.kind.AsMessage(testAtoms)
		if err != nil {
			t.Fatalf("%s: %s", tc.name, err)
		}
		if msg.ID != 30 {
			t.Errorf("%s: id = %d, want 30", tc.name, msg.ID)
		}
		if msg.Mask != x11.SubstructureNotify {
			t.Errorf("%s: mask = %s, want SubstructureNotify", tc.name, msg.Mask)
		}
		if msg.DType != "_XEMBED" {
			t.Errorf("%s: dtype = %s", tc.name, msg.DType)
		}
		data := msg.Data()
		if data[1] != tc.opcode {
			t.Errorf("%s: opcode = %d, want %d", tc.name, data[1], tc.opcode)
		}
		if data[3] != 40 {
			t.Errorf("%s: embedder = %d, want 40", tc.name, data[3])
		}
		if data[4] != 0 {
			t.Errorf("%s: version = %d, want 0", tc.name, data[4])
		}
	}
}

func TestAsMessageResolutionFailure(t *testing.T) {
	empty := fakeQuerier{}
	kinds := []x11.ClientMessageKind{
		x11.DeleteWindow(1),
		x11.TakeFocus(1),
		x11.TakeSystrayOwnership(1, 2),
	}
	for _, kind := range kinds {
		msg, err := kind.AsMessage(empty)
		if err == nil {
			t.Fatalf("%+v: expected error", kind)
		}
		var atomErr *x11.AtomError
		if !errors.As(err, &atomErr) {
			t.Fatalf("%+v: got %T, want AtomError", kind, err)
		}
		if atomErr.Name == "" || atomErr.Cause == nil {
			t.Errorf("%+v: error missing name or cause: %+v", kind, atomErr)
		}
		if msg != (x11.ClientMessage{}) {
			t.Errorf("%+v: message produced despite error", kind)
		}
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	kinds := []x11.ClientMessageKind{
		x11.DeleteWindow(8),
		x11.TakeFocus(8),
		x11.TakeSystrayOwnership(1, 8),
		x11.XEmbedFocusIn(8, 9),
		x11.XEmbedModalityOn(8, 9),
		x11.XEmbedNotify(8, 9),
		x11.XEmbedWindowActivate(8, 9),
	}
	for _, kind := range kinds {
		msg, err := kind.AsMessage(testAtoms)
		if err != nil {
			t.Fatal(err)
		}
		again, err := x11.NewClientMessage(msg.ID, msg.Mask, msg.DType, msg.Data())
		if err != nil {
			t.Fatalf("%+v: revalidation failed: %s", kind, err)
		}
		if again != msg {
			t.Errorf("%+v: round trip changed the message", kind)
		}
	}
}
