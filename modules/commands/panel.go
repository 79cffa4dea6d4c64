package commands

import (
	"context"
	"fmt"

	uicore "profiledeck/modules/ui/core"
	"profiledeck/modules/ui/tui"
)

// panelCommand handles the 'panel' command
func panelCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	appCtx := GetContext()

	presenter := uicore.NewPresenter(appCtx.Client, appCtx.Config.Settings)

	ctx := context.Background()
	if err := presenter.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize presenter: %w", err)
	}

	tuiView := tui.NewTUIView()
	if err := tuiView.Initialize(presenter); err != nil {
		return fmt.Errorf("failed to initialize TUI: %w", err)
	}

	// Run blocks until the user quits; the view shuts the presenter down
	if err := tuiView.Run(ctx); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
