package ui

import (
	"cardinal/internal/cfg"
	"cardinal/internal/x11"
)

// MsgEvent carries a translated X event into the view.
type MsgEvent struct {
	Event x11.XEvent
}

// MsgConfig swaps the active profile after a live reload.
type MsgConfig struct {
	Config cfg.Config
}

type MsgStatus struct {
	Status Status
	Text   string
}
