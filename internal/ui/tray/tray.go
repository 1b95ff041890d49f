package tray

import (
	"fmt"

	"clockface/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnPreferences   func()
	OnToggle24Hour  func()
	OnToggleSeconds func()
	OnToggleSmooth  func()
	OnTogglePause   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	use24Item   *fyne.MenuItem
	secondsItem *fyne.MenuItem
	smoothItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.use24Item = fyne.NewMenuItem("24-hour clock", invoke(&manager.callbacks.OnToggle24Hour))
	manager.secondsItem = fyne.NewMenuItem("Show seconds", invoke(&manager.callbacks.OnToggleSeconds))
	manager.smoothItem = fyne.NewMenuItem("Smooth hands", invoke(&manager.callbacks.OnToggleSmooth))
	manager.pauseItem = fyne.NewMenuItem("Pause clock", invoke(&manager.callbacks.OnTogglePause))

	manager.refreshMenu()
	return manager
}

// SetStatus shows the clock status line, which already names the pause state.
func (manager *Manager) SetStatus(status string) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetPaused switches the pause item between pause and resume.
func (manager *Manager) SetPaused(paused bool) {
	if paused {
		manager.pauseItem.Label = "Resume clock"
	} else {
		manager.pauseItem.Label = "Pause clock"
	}
	manager.refreshMenu()
}

// SetSettings mirrors the display toggles as menu check marks.
func (manager *Manager) SetSettings(settings model.ClockSettings) {
	manager.use24Item.Checked = settings.Use24Hour
	manager.secondsItem.Checked = settings.ShowSeconds
	manager.smoothItem.Checked = settings.SmoothHands
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show clock", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		manager.use24Item,
		manager.secondsItem,
		manager.smoothItem,
		manager.pauseItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

// invoke reads the callback at call time so callbacks may be set later.
func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
