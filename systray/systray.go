package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"
)

// Controls are the engine operations exposed through the tray menu.
type Controls struct {
	Reload    func()
	SetPaused func(paused bool)
	Paused    func() bool
}

// Manager manages the system tray icon and menu.
type Manager struct {
	webPort  int
	iconData []byte
	controls Controls
	quit     chan struct{}
}

// NewManager creates a new tray manager.
func NewManager(webPort int, iconData []byte, controls Controls) *Manager {
	return &Manager{
		webPort:  webPort,
		iconData: iconData,
		controls: controls,
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call).
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray.
func (m *Manager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel closed when the user clicks Quit.
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}
	systray.SetTitle("hotphrase")
	systray.SetTooltip("hotphrase - hotkeys and text expansion")

	mOpen := systray.AddMenuItem("Open Dashboard", "Open the hotphrase dashboard")
	mReload := systray.AddMenuItem("Reload Shortcuts", "Re-read shortcut definitions")
	mPause := systray.AddMenuItem("Pause", "Stop acting on triggers")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit hotphrase")

	go func() {
		for {
			select {
			case <-mOpen.ClickedCh:
				m.openDashboard()
			case <-mReload.ClickedCh:
				m.controls.Reload()
			case <-mPause.ClickedCh:
				paused := !m.controls.Paused()
				m.controls.SetPaused(paused)
				if paused {
					mPause.SetTitle("Resume")
				} else {
					mPause.SetTitle("Pause")
				}
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openDashboard opens the web dashboard in the default browser.
func (m *Manager) openDashboard() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening dashboard", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open dashboard", "error", err)
	}
}
