// Package tray provides a system tray interface for the Hastarekha palm scanner.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(scanning bool)
	onOpenUI func()
	onQuit   func()
	scanning bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle      *systray.MenuItem
	menuLastCapture *systray.MenuItem
}

// New creates a new Tray instance with scanning enabled by default.
func New() *Tray {
	return &Tray{
		scanning: true,
	}
}

// OnToggle sets the callback function to be called when scanning is toggled.
func (t *Tray) OnToggle(fn func(scanning bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpenUI sets the callback function to be called when the open-scanner menu item is clicked.
func (t *Tray) OnOpenUI(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenUI = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Hastarekha")
	systray.SetTooltip("Hastarekha Palm Scanner")

	t.menuToggle = systray.AddMenuItem("● Scanning", "Toggle palm scanning")
	systray.AddSeparator()

	t.menuLastCapture = systray.AddMenuItem("Last capture: none", "Most recent palm capture")
	t.menuLastCapture.Disable()
	systray.AddSeparator()

	menuOpenUI := systray.AddMenuItem("Open Scanner...", "Open the scanner in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Hastarekha")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpenUI.ClickedCh:
				t.handleOpenUI()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.scanning = !t.scanning
	scanning := t.scanning

	if scanning {
		t.menuToggle.SetTitle("● Scanning")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(scanning)
	}
}

// handleOpenUI handles the open-scanner menu item click.
func (t *Tray) handleOpenUI() {
	t.mu.RLock()
	callback := t.onOpenUI
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastCapture updates the last-capture line in the menu.
func (t *Tray) SetLastCapture(summary string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastCapture != nil {
		if summary == "" {
			t.menuLastCapture.SetTitle("Last capture: none")
		} else {
			t.menuLastCapture.SetTitle("Last capture: " + summary)
		}
	}
}

// IsScanning returns the current scanning state.
func (t *Tray) IsScanning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scanning
}
