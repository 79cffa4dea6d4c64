package tui

import (
	"context"
	"fmt"
	"sync"

	"profiledeck/modules/ui/core"

	tea "github.com/charmbracelet/bubbletea"
)

// TUIView implements the core.View interface for Bubble Tea
type TUIView struct {
	mu        sync.RWMutex
	presenter core.Presenter
	program   *tea.Program
	model     *Model
}

// NewTUIView creates a new TUI view
func NewTUIView() *TUIView {
	return &TUIView{}
}

// Initialize sets up the view with a presenter
func (v *TUIView) Initialize(presenter core.Presenter) error {
	v.mu.Lock()
	v.presenter = presenter
	v.model = NewModel(presenter)
	v.mu.Unlock()

	// Subscriptions must be registered outside the lock: the callbacks
	// call back into the view.
	presenter.Subscribe(func(update core.StateUpdate) {
		v.UpdateState(update)
	})
	presenter.SubscribeNotifications(func(n *core.Notification) {
		v.ShowNotification(n)
	})

	return nil
}

// Run starts the TUI main loop (blocking). Teardown always stops the
// session's polling loops, even when the program exits on error.
func (v *TUIView) Run(ctx context.Context) error {
	v.mu.Lock()
	if v.model == nil {
		v.mu.Unlock()
		return fmt.Errorf("view not initialized")
	}
	program := tea.NewProgram(v.model, tea.WithAltScreen(), tea.WithContext(ctx))
	v.program = program
	v.mu.Unlock()

	defer v.presenter.Shutdown()

	_, err := program.Run()
	return err
}

// Stop gracefully stops the view
func (v *TUIView) Stop() error {
	v.mu.RLock()
	program := v.program
	v.mu.RUnlock()

	if program != nil {
		program.Quit()
	}
	return nil
}

// UpdateState forwards a state update onto the program's message queue
func (v *TUIView) UpdateState(update core.StateUpdate) {
	v.mu.RLock()
	program := v.program
	v.mu.RUnlock()

	if program != nil {
		program.Send(stateUpdateMsg{update: update})
	}
}

// ShowNotification forwards a notification onto the program's message queue
func (v *TUIView) ShowNotification(n *core.Notification) {
	v.mu.RLock()
	program := v.program
	v.mu.RUnlock()

	if program != nil {
		program.Send(notificationMsg{notification: n})
	}
}
