package core

import (
	"fmt"
	"time"

	"profiledeck/modules/platform/api"
)

// ViewModelType identifies the type of view model
type ViewModelType string

const (
	VMDashboard  ViewModelType = "dashboard"
	VMProfiles   ViewModelType = "profiles"
	VMLogs       ViewModelType = "logs"
	VMQuarantine ViewModelType = "quarantine"
)

// Display fallbacks for summary fields the server has not populated yet
const (
	RefreshStatusIdle = "Idle"
	RefreshStatusLive = "Rotating"
	RefreshRangeUnset = "-"
)

// ViewModel is the base interface for all view models
type ViewModel interface {
	Type() ViewModelType
	LastUpdated() time.Time
}

// BaseViewModel provides common fields for all view models
type BaseViewModel struct {
	VMType    ViewModelType `json:"type"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (vm *BaseViewModel) Type() ViewModelType    { return vm.VMType }
func (vm *BaseViewModel) LastUpdated() time.Time { return vm.UpdatedAt }

// ProfileVM represents a managed profile for display
type ProfileVM struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfilesVM is the view model for the profile list
type ProfilesVM struct {
	BaseViewModel
	Profiles []ProfileVM `json:"profiles"`
}

// LogsVM is the view model for the activity log tail. Lines are ordered
// most-recent-first and capped at MaxLines.
type LogsVM struct {
	BaseViewModel
	Lines    []string `json:"lines"`
	MaxLines int      `json:"max_lines"`
}

// DashboardVM is the view model for the dashboard summary
type DashboardVM struct {
	BaseViewModel
	TotalProfiles  int    `json:"total_profiles"`
	ActiveProfiles int    `json:"active_profiles"`
	Quarantined    int    `json:"quarantined"`
	InBackoff      int    `json:"in_backoff"`
	RefreshStatus  string `json:"refresh_status"`
	RefreshRange   string `json:"refresh_range"`
	LastCycle      string `json:"last_cycle"`
}

// QuarantineEntryVM represents one quarantined profile for display
type QuarantineEntryVM struct {
	Profile     string `json:"profile"`
	Failures    int    `json:"failures"`
	NextAllowed string `json:"next_allowed"`
}

// QuarantineVM is the view model for the quarantine list
type QuarantineVM struct {
	BaseViewModel
	Entries []QuarantineEntryVM `json:"entries"`
}

// profileVM converts a wire profile
func profileVM(p api.Profile) ProfileVM {
	return ProfileVM{Name: p.Profile, Email: p.Email}
}

// quarantineEntryVM converts a wire quarantine entry. NextAllowed arrives as
// a unix timestamp; zero means immediately eligible.
func quarantineEntryVM(q api.QuarantineEntry) QuarantineEntryVM {
	next := RefreshRangeUnset
	if q.NextAllowed > 0 {
		next = time.Unix(int64(q.NextAllowed), 0).Format("15:04:05")
	}
	return QuarantineEntryVM{
		Profile:     q.Profile,
		Failures:    q.Failures,
		NextAllowed: next,
	}
}

// dashboardVM derives the display summary from the server aggregate. A nil
// summary yields the idle defaults so a sparse response never shows stale
// numbers.
func dashboardVM(s *api.Summary) *DashboardVM {
	vm := &DashboardVM{
		BaseViewModel: BaseViewModel{VMType: VMDashboard, UpdatedAt: time.Now()},
		RefreshStatus: RefreshStatusIdle,
		RefreshRange:  RefreshRangeUnset,
		LastCycle:     RefreshRangeUnset,
	}
	if s == nil {
		return vm
	}

	vm.TotalProfiles = s.TotalProfiles
	vm.Quarantined = s.QuarantinedCount
	vm.InBackoff = s.ProfilesInBackoff

	active := s.TotalProfiles - s.QuarantinedCount - s.ProfilesInBackoff
	if active < 0 {
		active = 0
	}
	vm.ActiveProfiles = active

	if s.LastCycleTime > 0 {
		vm.RefreshStatus = RefreshStatusLive
		vm.LastCycle = time.Unix(int64(s.LastCycleTime), 0).Format("15:04:05")
	}
	if s.RotationGroups > 0 && s.CurrentGroupIndex >= 0 {
		vm.RefreshRange = fmt.Sprintf("group %d/%d (%d profiles)",
			s.CurrentGroupIndex+1, s.RotationGroups, s.CurrentGroupSize)
	}

	return vm
}
