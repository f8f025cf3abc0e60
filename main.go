package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"cardinal/internal/cfg"
	"cardinal/internal/log"
	"cardinal/internal/tray"
	"cardinal/internal/ui"
	"cardinal/internal/x11"

	tea "github.com/charmbracelet/bubbletea"
)

//go:embed .version
var version string

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printHelp()
	case "--version", "version":
		fmt.Printf("cardinal %s - X11 event monitor and system tray host\n", strings.Trim(version, "\n"))
	case "new":
		if len(os.Args) < 3 {
			printHelp()
			os.Exit(1)
		}
		if err := cfg.MakeProfile(os.Args[2]); err != nil {
			fmt.Println("Failed to make profile:", err)
			os.Exit(1)
		}
		fmt.Println("Created profile", os.Args[2])
	case "close":
		os.Exit(cmdWindow(os.Args[2:], func(x *x11.Client, win x11.Xid) error {
			return x.CloseWindow(win)
		}))
	case "focus":
		os.Exit(cmdWindow(os.Args[2:], func(x *x11.Client, win x11.Xid) error {
			return x.FocusWindow(win)
		}))
	case "tray":
		os.Exit(cmdTray(profileArg(os.Args[2:])))
	case "watch":
		os.Exit(cmdWatch(profileArg(os.Args[2:])))
	default:
		os.Exit(cmdWatch(os.Args[1]))
	}
}

// profileArg picks the profile name from the remaining arguments.
func profileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "default"
}

// cmdWindow sends a WM_PROTOCOLS message to the window named on the command
// line. The window may be given as a decimal or 0x-prefixed id, or as the
// literal "active".
func cmdWindow(args []string, send func(*x11.Client, x11.Xid) error) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}
	x, err := x11.NewClient()
	if err != nil {
		fmt.Println("Failed to connect to X server:", err)
		return 1
	}
	defer x.Close()
	var win x11.Xid
	if args[0] == "active" {
		win, err = x.GetActiveWindow()
		if err != nil {
			fmt.Println("Failed to get active window:", err)
			return 1
		}
		if win == 0 {
			fmt.Println("No active window.")
			return 1
		}
	} else {
		id, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			fmt.Println("Invalid window id:", args[0])
			return 1
		}
		win = x11.Xid(id)
	}
	if err := send(x, win); err != nil {
		fmt.Println("Failed to message window:", err)
		return 1
	}
	return 0
}

// cmdTray runs the system tray host until the process is signalled or the
// X connection dies.
func cmdTray(profileName string) int {
	profile, err := cfg.GetProfile(profileName)
	if err != nil {
		fmt.Println("Failed to get profile:", err)
		return 1
	}
	logger := log.DefaultLogger(log.ParseLevel(profile.General.LogLevel), profile.General.LogPath)
	defer logger.Close()

	x, err := x11.NewClient()
	if err != nil {
		logger.Error("Failed to connect to X server: %s", err)
		return 1
	}
	defer x.Close()

	tr := tray.New(x, profile.Tray, &logger)
	if err := tr.Acquire(); err != nil {
		logger.Error("Failed to acquire tray selection: %s", err)
		return 1
	}
	logger.Info("Hosting system tray on window %d", tr.Host())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	evtch, errch := x.Poll(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-signals:
			logger.Info("Shutting down.")
			return 0
		case evt := <-evtch:
			if err := tr.Handle(evt); err != nil {
				logger.Error("Tray error: %s", err)
			}
		case err := <-errch:
			if errors.Is(err, x11.ErrConnectionDied) {
				logger.Error("X connection died.")
				return 1
			}
			logger.Warn("X error: %s", err)
		}
	}
}

// cmdWatch runs the live event viewer with the given profile.
func cmdWatch(profileName string) int {
	profile, err := cfg.GetProfile(profileName)
	if err != nil {
		fmt.Println("Failed to get profile:", err)
		return 1
	}
	logger := log.DefaultLogger(log.ParseLevel(profile.General.LogLevel), profile.General.LogPath)
	defer logger.Close()

	x, err := x11.NewClient()
	if err != nil {
		logger.Error("Failed to connect to X server: %s", err)
		return 1
	}
	defer x.Close()

	// Reload the profile on edit. A missing profile file just means the
	// embedded defaults are in use, so there is nothing to watch.
	watcher, err := cfg.NewWatcher(profileName)
	if err != nil {
		logger.Warn("Not watching profile for changes: %s", err)
	} else {
		if err := watcher.Watch(); err != nil {
			logger.Warn("Not watching profile for changes: %s", err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	evtch, errch := x.Poll(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	program := tea.NewProgram(ui.NewModel(profile, windowLabel(x)))
	go func() {
		status := "watching root " + strconv.Itoa(int(x.RootWindow()))
		if !x.Randr() {
			status += " (no RandR)"
		}
		program.Send(ui.MsgStatus{Status: ui.StatusOk, Text: status})
		var updates chan cfg.Config
		var watchErrors chan cfg.WatchError
		if watcher != nil {
			updates = watcher.Updates
			watchErrors = watcher.Errors
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				program.Quit()
				return
			case evt := <-evtch:
				logger.Verbose("%s", ui.Describe(evt))
				program.Send(ui.MsgEvent{Event: evt})
			case err := <-errch:
				if errors.Is(err, x11.ErrConnectionDied) {
					logger.Error("X connection died.")
					program.Send(ui.MsgStatus{Status: ui.StatusFail, Text: "X connection died"})
					program.Quit()
					return
				}
				logger.Warn("X error: %s", err)
			case conf := <-updates:
				logger.Info("Reloaded profile %s", profileName)
				logger.SetLevel(log.ParseLevel(conf.General.LogLevel))
				program.Send(ui.MsgConfig{Config: conf})
			case err := <-watchErrors:
				if err.Fatal {
					logger.Error("Profile watcher died: %s", err.Err)
					watchErrors = nil
					updates = nil
					continue
				}
				logger.Warn("Profile watcher: %s", err.Err)
			}
		}
	}()

	if err := program.Start(); err != nil {
		logger.Error("UI error: %s", err)
		return 1
	}
	return 0
}

// windowLabel labels watched windows with their class, title and owning
// process, as far as the windows expose them.
func windowLabel(x *x11.Client) ui.Labeler {
	return func(win x11.Xid) string {
		label, _ := x.GetWindowClass(win)
		if title, err := x.GetWindowTitle(win); err == nil && title != "" && title != label {
			if label != "" {
				label += ": "
			}
			label += title
		}
		if pid, err := x.GetWindowPid(win); err == nil && pid != 0 {
			label = strings.TrimSpace(label + fmt.Sprintf(" (pid %d)", pid))
		}
		return label
	}
}

func printHelp() {
	fmt.Println(`
    cardinal - X11 event monitor and system tray host
    USAGE:
        cardinal [PROFILE]          Run the event viewer with the given
                                    profile (same as "watch").

    SUBCOMMANDS:
        cardinal watch [PROFILE]    Show a live view of events on the root
                                    window.
        cardinal tray [PROFILE]     Host the system tray selection and
                                    manage docked icons.
        cardinal close WINDOW       Ask WINDOW to close (WM_DELETE_WINDOW).
        cardinal focus WINDOW       Ask WINDOW to take focus (WM_TAKE_FOCUS).
                                    WINDOW is a window id or "active".
        cardinal new PROFILE        Create a new profile named PROFILE with
                                    the default configuration.
        cardinal help               Print this message.
        cardinal version            Get the version of cardinal installed.
    `)
}
