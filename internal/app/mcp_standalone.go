package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"coursepage/internal/config"
	mcpserver "coursepage/internal/mcp"
	"coursepage/internal/service"
)

// ServeMCP runs the editor as a standalone MCP server on stdin/stdout with no
// GUI, until ctx is cancelled or the client disconnects. Edits are saved to
// the same snapshot the desktop app watches. Destructive tools wait for the
// desktop app to approve them unless autoApprove is set.
func ServeMCP(ctx context.Context, cfg *config.Config, logger *log.Logger, autoApprove bool) error {
	if logger == nil {
		logger = log.Default()
	}
	rt, err := Open(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(context.Background()); err != nil {
			logger.Error("close runtime", "err", err)
		}
	}()

	// Another process may write the snapshot between tool calls.
	syncer := service.NewSnapshotWatcher(rt.Store, rt.Persist, rt.Editor, time.Second, logger)

	deps := mcpserver.Deps{
		Editor:  rt.Editor,
		Backups: rt.Backups,
		Syncer:  syncer,
		Logger:  logger,
	}
	if !autoApprove {
		deps.Approvals = rt.Approvals
	}
	mcpSrv := mcpserver.New(deps)

	errCh := make(chan error, 1)
	go func() { errCh <- mcpSrv.ServeStdio() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	case <-ctx.Done():
		return nil
	}
}
