package core

import (
	"context"
	"fmt"
	"sync"

	"profiledeck/modules/platform/api"
	"profiledeck/modules/platform/config"
	"profiledeck/modules/platform/logger"
)

// AppPresenter drives the session lifecycle: login, initial loads, polling
// loop startup, command dispatch, and teardown. It is the only component
// with cross-cutting control flow; everything else is a leaf.
type AppPresenter struct {
	mu sync.RWMutex

	client *api.Client
	cfg    *config.Settings

	state  *AppState
	poller *Poller

	stateCallbacks        []func(StateUpdate)
	notificationCallbacks []func(*Notification)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewAppPresenter creates a new presenter around an orchestrator client
func NewAppPresenter(client *api.Client, settings *config.Settings) *AppPresenter {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &AppPresenter{
		client:                client,
		cfg:                   settings,
		state:                 NewAppState(settings.LogWindowSize()),
		poller:                NewPoller(),
		stateCallbacks:        make([]func(StateUpdate), 0),
		notificationCallbacks: make([]func(*Notification), 0),
	}
}

// NewPresenter is a convenience constructor returning the Presenter interface
func NewPresenter(client *api.Client, settings *config.Settings) Presenter {
	return NewAppPresenter(client, settings)
}

// Initialize sets up the presenter
func (p *AppPresenter) Initialize(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)
	return nil
}

// GetState returns the shared view state
func (p *AppPresenter) GetState() *AppState {
	return p.state
}

// Phase returns the current session phase
func (p *AppPresenter) Phase() SessionPhase {
	return p.state.GetPhase()
}

// Poller exposes the polling controller, mainly for tests and diagnostics
func (p *AppPresenter) Poller() *Poller {
	return p.poller
}

// Subscribe registers a callback for state updates
func (p *AppPresenter) Subscribe(callback func(StateUpdate)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stateCallbacks = append(p.stateCallbacks, callback)
}

// SubscribeNotifications registers a callback for notifications
func (p *AppPresenter) SubscribeNotifications(callback func(*Notification)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notificationCallbacks = append(p.notificationCallbacks, callback)
}

// GetViewModel returns the current view model for a view type
func (p *AppPresenter) GetViewModel(viewType ViewModelType) (ViewModel, error) {
	vm := p.state.GetViewModel(viewType)
	if vm == nil {
		return nil, fmt.Errorf("unknown view type: %s", viewType)
	}
	return vm, nil
}

// HandleEvent processes a user event. Views call this from worker
// goroutines; blocking on network here is fine.
func (p *AppPresenter) HandleEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("nil event")
	}

	switch event.Type {
	case EventNavigate:
		return p.handleNavigate(event)

	case EventLoginSubmit:
		return p.handleLogin(event)

	case EventLoginCancel:
		p.state.SetPhase(PhaseUnauthenticated)
		return nil

	case EventRefresh:
		return p.Refresh()

	case EventLaunchProfile:
		return p.runCommand("Launch", fmt.Sprintf("Launched %s", event.Profile), func(ctx context.Context) error {
			return p.client.Launch(ctx, event.Profile, event.Data["email"])
		})

	case EventLaunchAll:
		return p.runCommand("Launch all", "All profiles launching", func(ctx context.Context) error {
			return p.client.LaunchAll(ctx)
		})

	case EventStartRefresh:
		return p.runCommand("Start refresh", "Auto-refresh started", func(ctx context.Context) error {
			return p.client.StartRefresh(ctx)
		})

	case EventStopRefresh:
		return p.runCommand("Stop refresh", "Auto-refresh stopped", func(ctx context.Context) error {
			return p.client.StopRefresh(ctx)
		})

	case EventSafeRefresh:
		return p.runCommand("Safe refresh", "Safe refresh cycle started", func(ctx context.Context) error {
			return p.client.SafeRefresh(ctx)
		})

	case EventAddProxies:
		proxies, _ := event.Value.(map[string]string)
		return p.runCommand("Add proxies", "Proxies applied", func(ctx context.Context) error {
			return p.client.AddProxies(ctx, proxies)
		})

	case EventChangePassword:
		password, _ := event.Value.(string)
		return p.runCommand("Change password", "Password changed", func(ctx context.Context) error {
			return p.client.ChangePassword(ctx, password)
		})

	case EventCloseAll:
		return p.runCommand("Close all", "All profiles closed", func(ctx context.Context) error {
			return p.client.CloseAll(ctx)
		})

	case EventLoadQuarantine:
		if !p.state.IsLoggedIn() {
			return fmt.Errorf("not logged in")
		}
		return p.refreshQuarantine(p.ctx)

	case EventResetQuarantine:
		err := p.runCommand("Reset quarantine", fmt.Sprintf("Quarantine cleared for %s", event.Profile), func(ctx context.Context) error {
			return p.client.ResetQuarantine(ctx, event.Profile)
		})
		if err == nil {
			// The list shrinks on success; reload it right away
			_ = p.refreshQuarantine(p.ctx)
		}
		return err

	case EventQuit:
		return p.Shutdown()
	}

	return fmt.Errorf("unhandled event type: %s", event.Type)
}

// handleNavigate switches the active view
func (p *AppPresenter) handleNavigate(event *Event) error {
	target := ViewModelType(event.Target)
	switch target {
	case VMDashboard, VMProfiles, VMLogs, VMQuarantine:
		p.state.SetCurrentView(target)
		return nil
	}
	return fmt.Errorf("unknown view: %s", event.Target)
}

// handleLogin runs the Unauthenticated -> Authenticating -> Authenticated
// transition. A cancelled prompt or a rejected password drops back to
// Unauthenticated without starting any loops.
func (p *AppPresenter) handleLogin(event *Event) error {
	cred, ok := event.Value.(CredentialResult)
	if !ok {
		return fmt.Errorf("login event without credentials")
	}
	if !cred.Submitted {
		p.state.SetPhase(PhaseUnauthenticated)
		return nil
	}

	p.state.SetPhase(PhaseAuthenticating)

	if err := p.client.Login(p.ctx, cred.Value); err != nil {
		p.state.SetPhase(PhaseUnauthenticated)
		p.notify(NotifyError, "Login", err.Error())
		return err
	}

	p.state.SetPhase(PhaseAuthenticated)
	p.notify(NotifySuccess, "Login", "Logged in")
	logger.Info("session established with %s", p.client.BaseURL())

	// Initial loads before the first scheduled ticks
	if err := p.refreshProfiles(p.ctx); err != nil {
		logger.Warn("initial profile load: %v", err)
	}
	if err := p.refreshSummary(p.ctx); err != nil {
		logger.Warn("initial summary load: %v", err)
	}

	p.startPolling()
	return nil
}

// startPolling installs both recurring loops. Start is idempotent per kind,
// so a re-login cannot stack tickers.
func (p *AppPresenter) startPolling() {
	p.poller.Start(PollLogs, p.cfg.LogPollInterval(), p.refreshLogs)
	p.poller.Start(PollSummary, p.cfg.SummaryPollInterval(), p.refreshSummary)
}

// runCommand guards a fleet command behind the Authenticated phase, reports
// the outcome as a notification, and on success triggers an immediate log
// refresh so the user sees the server's reaction without waiting a tick.
func (p *AppPresenter) runCommand(title, successMsg string, fn func(ctx context.Context) error) error {
	if !p.state.IsLoggedIn() {
		err := fmt.Errorf("not logged in")
		p.notify(NotifyWarning, title, err.Error())
		return err
	}

	if err := fn(p.ctx); err != nil {
		p.notify(NotifyError, title, err.Error())
		return err
	}

	p.notify(NotifySuccess, title, successMsg)

	if err := p.refreshLogs(p.ctx); err != nil {
		logger.Debug("post-command log refresh: %v", err)
	}
	return nil
}

// Refresh forces a refresh of all authenticated data
func (p *AppPresenter) Refresh() error {
	if !p.state.IsLoggedIn() {
		return fmt.Errorf("not logged in")
	}

	var firstErr error
	for _, fn := range []func(context.Context) error{p.refreshProfiles, p.refreshSummary, p.refreshLogs} {
		if err := fn(p.ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// refreshProfiles fetches and replaces the profile list
func (p *AppPresenter) refreshProfiles(ctx context.Context) error {
	profiles, err := p.client.Profiles(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil // session ended mid-flight, discard
	}
	vm := p.state.ReplaceProfiles(profiles)
	p.notifyStateUpdate(VMProfiles, vm)
	return nil
}

// refreshLogs fetches and replaces the log tail
func (p *AppPresenter) refreshLogs(ctx context.Context) error {
	lines, err := p.client.Logs(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	vm := p.state.ReplaceLogs(lines)
	p.notifyStateUpdate(VMLogs, vm)
	return nil
}

// refreshSummary fetches and replaces the dashboard summary
func (p *AppPresenter) refreshSummary(ctx context.Context) error {
	summary, err := p.client.Summary(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	vm := p.state.ReplaceSummary(summary)
	p.notifyStateUpdate(VMDashboard, vm)
	return nil
}

// refreshQuarantine fetches and replaces the quarantine list. Fetched on
// demand, never polled.
func (p *AppPresenter) refreshQuarantine(ctx context.Context) error {
	entries, err := p.client.Quarantine(ctx)
	if err != nil {
		p.notify(NotifyError, "Quarantine", err.Error())
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	vm := p.state.ReplaceQuarantine(entries)
	p.notifyStateUpdate(VMQuarantine, vm)
	return nil
}

// Shutdown ends the session. Both loops are stopped unconditionally - even
// when they never started - and the token is dropped.
func (p *AppPresenter) Shutdown() error {
	p.state.SetPhase(PhaseEnded)
	p.poller.StopAll()
	if p.cancel != nil {
		p.cancel()
	}
	p.client.ClearToken()
	logger.Info("session ended")
	return nil
}

// notify sends a notification to all subscribers
func (p *AppPresenter) notify(ntype NotificationType, title, message string) {
	n := NewNotification(ntype, title, message)
	p.state.AddNotification(n)

	p.mu.RLock()
	callbacks := p.notificationCallbacks
	p.mu.RUnlock()

	for _, cb := range callbacks {
		cb(n)
	}
}

// notifyStateUpdate broadcasts a state change to all subscribers
func (p *AppPresenter) notifyStateUpdate(viewType ViewModelType, vm ViewModel) {
	update := StateUpdate{
		ViewType:  viewType,
		ViewModel: vm,
	}

	p.mu.RLock()
	callbacks := p.stateCallbacks
	p.mu.RUnlock()

	for _, cb := range callbacks {
		cb(update)
	}
}
