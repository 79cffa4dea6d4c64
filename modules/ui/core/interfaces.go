package core

import (
	"context"
)

// View is the interface that all UI implementations must satisfy
type View interface {
	// Initialize sets up the view
	Initialize(presenter Presenter) error

	// Run starts the view's main loop (blocking)
	Run(ctx context.Context) error

	// Stop gracefully stops the view
	Stop() error

	// UpdateState updates the view with new state
	UpdateState(update StateUpdate)

	// ShowNotification displays a notification
	ShowNotification(notification *Notification)
}

// Presenter handles the session lifecycle and prepares view models.
// It's the bridge between the orchestrator client and the views.
type Presenter interface {
	// Initialize sets up the presenter
	Initialize(ctx context.Context) error

	// HandleEvent processes a user event
	HandleEvent(event *Event) error

	// GetViewModel returns the current view model for a view type
	GetViewModel(viewType ViewModelType) (ViewModel, error)

	// Phase returns the current session phase
	Phase() SessionPhase

	// Subscribe registers a callback for state updates
	Subscribe(callback func(StateUpdate))

	// SubscribeNotifications registers a callback for notifications
	SubscribeNotifications(callback func(*Notification))

	// Refresh forces a refresh of all authenticated data
	Refresh() error

	// Shutdown ends the session and stops the polling loops
	Shutdown() error
}
