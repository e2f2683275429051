package main

import (
	"embed"
	"os"

	"github.com/charmbracelet/log"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	editorApp "coursepage/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var icon []byte

func main() {
	app := editorApp.New()

	err := wails.Run(&options.App{
		Title:     "Course Page Editor",
		Width:     1440,
		Height:    900,
		MinWidth:  1024,
		MinHeight: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour:         &options.RGBA{R: 250, G: 250, B: 252, A: 1},
		Menu:                     editorApp.NewMenu(app),
		EnableDefaultContextMenu: false,
		OnStartup:                app.Startup,
		OnBeforeClose:            app.BeforeClose,
		OnShutdown:               app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar:             mac.TitleBarHiddenInset(),
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			About: &mac.AboutInfo{
				Title:   "Course Page Editor",
				Message: "Drag blocks from the palette to lay out a course landing page.",
				Icon:    icon,
			},
		},
		Linux: &linux.Options{
			Icon:        icon,
			ProgramName: "coursepage",
		},
	})

	if err != nil {
		log.Error("wails", "err", err)
		os.Exit(1)
	}
}
