package app

import (
	"context"
	"os"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"coursepage/internal/config"
	"coursepage/internal/logging"
	"coursepage/internal/service"
)

const (
	importSettle     = 500 * time.Millisecond
	snapshotPollRate = 2 * time.Second
	approvalPollRate = 500 * time.Millisecond
)

// wailsEmitter forwards service events to the frontend. Services emit from
// timers and watchers with their own contexts, so the Wails context captured
// at startup is used instead.
type wailsEmitter struct {
	ctx context.Context
}

func (e wailsEmitter) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(e.ctx, event, data)
}

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	rt       *Runtime
	imports  *service.ImportWatcher
	snapshot *service.SnapshotWatcher
	approval *service.ApprovalRelay
	window   *service.WindowSettingsService
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load config: %v", err)
		return
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	emitter := wailsEmitter{ctx: ctx}

	rt, err := Open(ctx, cfg, emitter, logger)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open storage: %v", err)
		return
	}
	a.rt = rt

	if err := rt.Backups.Start(cfg.BackupSchedule); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to schedule backups: %v", err)
	}

	// A document dropped into the import dir replaces the open one.
	imports, err := service.NewImportWatcher(cfg.ImportDir, rt.Editor, importSettle, emitter, logger)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to watch import dir: %v", err)
	} else {
		imports.Start()
		a.imports = imports
	}

	// Picks up edits made by the standalone MCP server.
	a.snapshot = service.NewSnapshotWatcher(rt.Store, rt.Persist, rt.Editor, snapshotPollRate, logger)
	a.snapshot.Start(ctx)

	// Shows destructive actions the standalone MCP server is waiting on.
	a.approval = service.NewApprovalRelay(rt.Approvals, emitter, approvalPollRate, logger)
	a.approval.Start(ctx)

	a.window = service.NewWindowSettingsService(rt.Settings)
	size := a.window.LoadWindowSize(ctx)
	wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)
}

// BeforeClose saves the window size. It never blocks closing.
func (a *App) BeforeClose(ctx context.Context) bool {
	if a.window != nil {
		w, h := wailsRuntime.WindowGetSize(ctx)
		if err := a.window.SaveWindowSize(ctx, w, h); err != nil {
			a.rt.Logger.Warn("window size not saved", "err", err)
		}
	}
	return false
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.snapshot != nil {
		a.snapshot.Stop()
	}
	if a.approval != nil {
		a.approval.Stop()
	}
	if a.imports != nil {
		a.imports.Stop()
	}
	if a.rt != nil {
		if err := a.rt.Close(ctx); err != nil {
			a.rt.Logger.Error("shutdown", "err", err)
		}
	}
}
