// Package ui implements the UI for cardinal's watch mode.
package ui

import (
	"fmt"
	"strconv"

	"cardinal/internal/cfg"
	"cardinal/internal/x11"

	tea "github.com/charmbracelet/bubbletea"
	gloss "github.com/charmbracelet/lipgloss"
)

// maxLines is how many translated events the view keeps around.
const maxLines = 128

// Labeler resolves a window id to a human-readable label, typically its
// class and title. An empty result means nothing is known about the window.
type Labeler func(win x11.Xid) string

type line struct {
	seq    int
	text   string
	marked bool
}

type Model struct {
	conf       cfg.Config
	labeler    Labeler
	lines      []line
	seq        int
	status     Status
	statusText string
}

func NewModel(conf cfg.Config, labeler Labeler) Model {
	return Model{
		conf:       conf,
		labeler:    labeler,
		lines:      []line{},
		status:     StatusUnknown,
		statusText: "",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "ctrl+l":
			m.lines = []line{}
		}
	case MsgEvent:
		if !m.wants(msg.Event) {
			return m, nil
		}
		m.seq += 1
		m.lines = append(m.lines, line{
			seq:    m.seq,
			text:   m.describe(msg.Event),
			marked: m.isMarker(msg.Event),
		})
		if len(m.lines) > maxLines {
			m.lines = m.lines[len(m.lines)-maxLines:]
		}
	case MsgConfig:
		m.conf = msg.Config
	case MsgStatus:
		m.status = msg.Status
		m.statusText = msg.Text
	}

	return m, nil
}

func (m Model) View() string {
	style := statusStyles[m.status]
	out := style.style.Render("\n  STATUS: " + style.title)
	if m.statusText != "" {
		out += style.style.Render(" | " + m.statusText)
	}
	out += "\n"

	out += cyanStyle.Render("  SEQ   Event                   ")
	out += grayStyle.Render(fmt.Sprintf("%d events\n", m.seq))
	for _, l := range m.lines {
		str := "  " + pad(strconv.Itoa(l.seq), 6) + l.text + "\n"
		if l.marked {
			out += markStyle.Render(str)
		} else {
			out += gloss.NewStyle().Render(str)
		}
	}
	out += grayStyle.Render("\n  q: quit    ctrl+l: clear\n\n")

	return out
}

// wants reports whether the current profile shows the given event.
func (m Model) wants(evt x11.XEvent) bool {
	switch evt := evt.(type) {
	case x11.MouseEvent:
		if evt.State == x11.StateMotion {
			return m.conf.Watch.ShowMotion
		}
	case x11.ExposeEvent:
		return m.conf.Watch.ShowExpose
	case x11.PropertyEvent:
		return m.conf.Watch.ShowProperty
	}
	return true
}

func (m Model) isMarker(evt x11.XEvent) bool {
	key, ok := evt.(x11.KeyPress)
	return ok && key.Key == m.conf.Keys.Marker
}

// describe renders the event line, tagging it with the window's label when
// one can be resolved.
func (m Model) describe(evt x11.XEvent) string {
	text := Describe(evt)
	if m.labeler == nil {
		return text
	}
	win, ok := windowOf(evt)
	if !ok {
		return text
	}
	if label := m.labeler(win); label != "" {
		text += "  [" + label + "]"
	}
	return text
}

// windowOf extracts the subject window of an event, if it has one.
func windowOf(evt x11.XEvent) (x11.Xid, bool) {
	switch evt := evt.(type) {
	case x11.ClientMessage:
		return evt.ID, true
	case x11.ConfigureNotify:
		return evt.Window, true
	case x11.ConfigureRequest:
		return evt.Window, true
	case x11.Enter:
		return evt.Window, true
	case x11.Leave:
		return evt.Window, true
	case x11.ExposeEvent:
		return evt.Window, true
	case x11.MapRequest:
		return evt.Window, true
	case x11.MouseEvent:
		return evt.Window, true
	case x11.PropertyEvent:
		return evt.Window, true
	default:
		// DestroyNotify is deliberately left out: the window is gone, so
		// property queries on it can only fail.
		return 0, false
	}
}

// Describe renders an event as a single log line.
func Describe(evt x11.XEvent) string {
	switch evt := evt.(type) {
	case x11.ClientMessage:
		return fmt.Sprintf("ClientMessage    win=%d type=%s data=%v", evt.ID, evt.DType, evt.Data())
	case x11.ConfigureNotify:
		return fmt.Sprintf("ConfigureNotify  win=%d %dx%d+%d+%d root=%t", evt.Window, evt.Region.W, evt.Region.H, evt.Region.X, evt.Region.Y, evt.IsRoot)
	case x11.ConfigureRequest:
		return fmt.Sprintf("ConfigureRequest win=%d %dx%d+%d+%d", evt.Window, evt.Region.W, evt.Region.H, evt.Region.X, evt.Region.Y)
	case x11.Enter:
		return fmt.Sprintf("Enter            win=%d abs=(%d,%d)", evt.Window, evt.Abs.X, evt.Abs.Y)
	case x11.Leave:
		return fmt.Sprintf("Leave            win=%d abs=(%d,%d)", evt.Window, evt.Abs.X, evt.Abs.Y)
	case x11.ExposeEvent:
		return fmt.Sprintf("Expose           win=%d %dx%d+%d+%d count=%d", evt.Window, evt.Region.W, evt.Region.H, evt.Region.X, evt.Region.Y, evt.Count)
	case x11.DestroyNotify:
		return fmt.Sprintf("Destroy          win=%d", evt.Window)
	case x11.KeyPress:
		return fmt.Sprintf("KeyPress         %s", evt.Key)
	case x11.MapRequest:
		return fmt.Sprintf("MapRequest       win=%d manage=%t", evt.Window, evt.Manage)
	case x11.MouseEvent:
		return fmt.Sprintf("Mouse            win=%d %s button=%d abs=(%d,%d)", evt.Window, evt.State, evt.Button, evt.Abs.X, evt.Abs.Y)
	case x11.PropertyEvent:
		return fmt.Sprintf("Property         win=%d atom=%s root=%t", evt.Window, evt.Atom, evt.IsRoot)
	case x11.RandrNotify:
		return "RandrNotify"
	case x11.ScreenChange:
		return "ScreenChange"
	default:
		return fmt.Sprintf("Unknown          %T", evt)
	}
}

func pad(str string, length int) string {
	toAdd := length - len(str)
	for i := 0; i < toAdd; i++ {
		str += " "
	}
	return str
}

type Status int

const (
	StatusUnknown Status = iota
	StatusBusy
	StatusOk
	StatusFail
)

type StatusStyle struct {
	title string
	style gloss.Style
}

var statusStyles = map[Status]StatusStyle{
	StatusUnknown: {
		title: "???",
		style: gloss.NewStyle().Foreground(gloss.Color("15")),
	},
	StatusBusy: {
		title: "busy",
		style: gloss.NewStyle().Foreground(gloss.Color("11")),
	},
	StatusOk: {
		title: "ok",
		style: gloss.NewStyle().Foreground(gloss.Color("10")),
	},
	StatusFail: {
		title: "fail",
		style: gloss.NewStyle().Foreground(gloss.Color("9")),
	},
}

var cyanStyle = gloss.NewStyle().Bold(true).Foreground(gloss.Color("14"))
var grayStyle = gloss.NewStyle().Foreground(gloss.Color("#aaaaaa"))
var markStyle = gloss.NewStyle().Bold(true).Foreground(gloss.Color("13"))
