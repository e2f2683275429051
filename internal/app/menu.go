package app

import (
	"runtime"

	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
)

// NewMenu builds the native menu bar. The document actions open the same
// dialogs as the toolbar buttons; the frontend follows along through the
// editor:changed event.
func NewMenu(a *App) *menu.Menu {
	m := menu.NewMenu()
	if runtime.GOOS == "darwin" {
		m.Append(menu.AppMenu())
	}

	file := m.AddSubmenu("File")
	file.AddText("Open Course...", keys.CmdOrCtrl("o"), func(*menu.CallbackData) {
		if _, err := a.LoadDocument(); err != nil {
			a.menuFailed("open", err)
		}
	})
	file.AddText("Export Course...", keys.CmdOrCtrl("e"), func(*menu.CallbackData) {
		if _, err := a.ExportDocument(); err != nil {
			a.menuFailed("export", err)
		}
	})
	file.AddSeparator()
	file.AddText("Back Up Now", keys.CmdOrCtrl("shift+b"), func(*menu.CallbackData) {
		if _, err := a.CreateBackup("menu"); err != nil {
			a.menuFailed("backup", err)
		}
	})

	// Cmd+C/V/X/A only reach the WebView through an Edit menu on macOS.
	m.Append(menu.EditMenu())

	view := m.AddSubmenu("View")
	view.AddText("Toggle Preview", keys.CmdOrCtrl("p"), func(*menu.CallbackData) {
		a.ToggleMode()
	})

	return m
}

func (a *App) menuFailed(action string, err error) {
	if a.rt != nil {
		a.rt.Logger.Error("menu action failed", "action", action, "err", err)
	}
}
