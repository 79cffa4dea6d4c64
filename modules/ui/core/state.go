package core

import (
	"sync"
	"time"

	"profiledeck/modules/platform/api"
)

// SessionPhase tracks where the session lifecycle currently is
type SessionPhase string

const (
	PhaseUnauthenticated SessionPhase = "unauthenticated"
	PhaseAuthenticating  SessionPhase = "authenticating"
	PhaseAuthenticated   SessionPhase = "authenticated"
	PhaseEnded           SessionPhase = "ended"
)

// AppState is the reconciled local snapshot of server data. Commands and
// polling loops both write here; the presentation layer only reads. Every
// replace swaps a whole view model pointer under the lock, so observers
// never see a partially updated list. Between a command's follow-up refresh
// and a concurrent poll tick the last write wins.
type AppState struct {
	mu sync.RWMutex

	// Current view
	CurrentView ViewModelType

	// View models (replaced wholesale on each successful fetch)
	Dashboard  *DashboardVM
	Profiles   *ProfilesVM
	Logs       *LogsVM
	Quarantine *QuarantineVM

	// Session
	Phase SessionPhase

	Notifications []*Notification
}

// NewAppState creates a new application state
func NewAppState(logWindow int) *AppState {
	if logWindow <= 0 {
		logWindow = 400
	}
	return &AppState{
		CurrentView:   VMDashboard,
		Phase:         PhaseUnauthenticated,
		Dashboard:     dashboardVM(nil),
		Profiles:      &ProfilesVM{BaseViewModel: BaseViewModel{VMType: VMProfiles}},
		Logs:          &LogsVM{BaseViewModel: BaseViewModel{VMType: VMLogs}, MaxLines: logWindow},
		Quarantine:    &QuarantineVM{BaseViewModel: BaseViewModel{VMType: VMQuarantine}},
		Notifications: make([]*Notification, 0),
	}
}

// SetPhase moves the session to a new phase
func (s *AppState) SetPhase(phase SessionPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Phase = phase
}

// GetPhase returns the current session phase
func (s *AppState) GetPhase() SessionPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Phase
}

// IsLoggedIn reports whether commands may be dispatched
func (s *AppState) IsLoggedIn() bool {
	return s.GetPhase() == PhaseAuthenticated
}

// SetCurrentView changes the current view
func (s *AppState) SetCurrentView(view ViewModelType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentView = view
}

// GetCurrentView returns the active view type
func (s *AppState) GetCurrentView() ViewModelType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CurrentView
}

// ReplaceProfiles swaps in a freshly fetched profile list
func (s *AppState) ReplaceProfiles(profiles []api.Profile) *ProfilesVM {
	vms := make([]ProfileVM, 0, len(profiles))
	for _, p := range profiles {
		vms = append(vms, profileVM(p))
	}
	vm := &ProfilesVM{
		BaseViewModel: BaseViewModel{VMType: VMProfiles, UpdatedAt: time.Now()},
		Profiles:      vms,
	}

	s.mu.Lock()
	s.Profiles = vm
	s.mu.Unlock()
	return vm
}

// ReplaceLogs swaps in a freshly fetched log tail. Server order is
// chronological; display order is most-recent-first, capped at the window.
func (s *AppState) ReplaceLogs(lines []string) *LogsVM {
	s.mu.RLock()
	maxLines := s.Logs.MaxLines
	s.mu.RUnlock()

	reversed := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		reversed = append(reversed, lines[i])
		if len(reversed) == maxLines {
			break
		}
	}
	vm := &LogsVM{
		BaseViewModel: BaseViewModel{VMType: VMLogs, UpdatedAt: time.Now()},
		Lines:         reversed,
		MaxLines:      maxLines,
	}

	s.mu.Lock()
	s.Logs = vm
	s.mu.Unlock()
	return vm
}

// ReplaceSummary swaps in a freshly fetched dashboard summary. A nil
// summary resets to the idle defaults.
func (s *AppState) ReplaceSummary(summary *api.Summary) *DashboardVM {
	vm := dashboardVM(summary)

	s.mu.Lock()
	s.Dashboard = vm
	s.mu.Unlock()
	return vm
}

// ReplaceQuarantine swaps in a freshly fetched quarantine list
func (s *AppState) ReplaceQuarantine(entries []api.QuarantineEntry) *QuarantineVM {
	vms := make([]QuarantineEntryVM, 0, len(entries))
	for _, q := range entries {
		vms = append(vms, quarantineEntryVM(q))
	}
	vm := &QuarantineVM{
		BaseViewModel: BaseViewModel{VMType: VMQuarantine, UpdatedAt: time.Now()},
		Entries:       vms,
	}

	s.mu.Lock()
	s.Quarantine = vm
	s.mu.Unlock()
	return vm
}

// GetViewModel returns the view model for a view type
func (s *AppState) GetViewModel(viewType ViewModelType) ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch viewType {
	case VMProfiles:
		return s.Profiles
	case VMLogs:
		return s.Logs
	case VMQuarantine:
		return s.Quarantine
	default:
		return s.Dashboard
	}
}

// AddNotification appends a notification, keeping the most recent ten
func (s *AppState) AddNotification(n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Notifications = append(s.Notifications, n)
	if len(s.Notifications) > 10 {
		s.Notifications = s.Notifications[len(s.Notifications)-10:]
	}
}
