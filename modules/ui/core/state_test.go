package core

import (
	"fmt"
	"testing"

	"profiledeck/modules/platform/api"
)

func TestReplaceLogsReversesOrder(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceLogs([]string{"oldest", "middle", "newest"})

	want := []string{"newest", "middle", "oldest"}
	if len(vm.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(vm.Lines), len(want))
	}
	for i, line := range want {
		if vm.Lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, vm.Lines[i], line)
		}
	}
}

func TestReplaceLogsCapsWindow(t *testing.T) {
	state := NewAppState(400)

	lines := make([]string, 600)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}

	vm := state.ReplaceLogs(lines)

	if len(vm.Lines) != 400 {
		t.Fatalf("got %d lines, want 400", len(vm.Lines))
	}
	// Most recent entry first, oldest surviving entry last
	if vm.Lines[0] != "line-599" {
		t.Errorf("first line = %q, want line-599", vm.Lines[0])
	}
	if vm.Lines[399] != "line-200" {
		t.Errorf("last line = %q, want line-200", vm.Lines[399])
	}
}

func TestReplaceLogsShorterThanWindow(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceLogs([]string{"only"})
	if len(vm.Lines) != 1 || vm.Lines[0] != "only" {
		t.Errorf("unexpected lines: %v", vm.Lines)
	}

	vm = state.ReplaceLogs(nil)
	if len(vm.Lines) != 0 {
		t.Errorf("empty fetch should yield no lines, got %v", vm.Lines)
	}
}

func TestReplaceLogsCustomWindow(t *testing.T) {
	state := NewAppState(5)

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}

	vm := state.ReplaceLogs(lines)
	if len(vm.Lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(vm.Lines))
	}
	if vm.Lines[0] != "line-9" || vm.Lines[4] != "line-5" {
		t.Errorf("unexpected window: %v", vm.Lines)
	}
}

func TestReplaceSummaryNilDefaults(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceSummary(nil)

	if vm.RefreshStatus != RefreshStatusIdle {
		t.Errorf("status = %q, want %q", vm.RefreshStatus, RefreshStatusIdle)
	}
	if vm.RefreshRange != RefreshRangeUnset {
		t.Errorf("range = %q, want %q", vm.RefreshRange, RefreshRangeUnset)
	}
	if vm.LastCycle != RefreshRangeUnset {
		t.Errorf("last cycle = %q, want %q", vm.LastCycle, RefreshRangeUnset)
	}
	if vm.TotalProfiles != 0 || vm.ActiveProfiles != 0 {
		t.Errorf("counts should be zero: %+v", vm)
	}
}

func TestReplaceSummaryDerivesActive(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceSummary(&api.Summary{
		TotalProfiles:     10,
		QuarantinedCount:  2,
		ProfilesInBackoff: 3,
	})

	if vm.ActiveProfiles != 5 {
		t.Errorf("active = %d, want 5", vm.ActiveProfiles)
	}
}

func TestReplaceSummaryActiveNeverNegative(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceSummary(&api.Summary{
		TotalProfiles:     2,
		QuarantinedCount:  2,
		ProfilesInBackoff: 3,
	})

	if vm.ActiveProfiles != 0 {
		t.Errorf("active = %d, want 0", vm.ActiveProfiles)
	}
}

func TestReplaceSummaryRotating(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceSummary(&api.Summary{
		TotalProfiles:     8,
		RotationGroups:    4,
		CurrentGroupIndex: 1,
		CurrentGroupSize:  2,
		LastCycleTime:     1700000000,
	})

	if vm.RefreshStatus != RefreshStatusLive {
		t.Errorf("status = %q, want %q", vm.RefreshStatus, RefreshStatusLive)
	}
	if vm.RefreshRange != "group 2/4 (2 profiles)" {
		t.Errorf("range = %q", vm.RefreshRange)
	}
	if vm.LastCycle == RefreshRangeUnset {
		t.Error("last cycle should be rendered")
	}
}

func TestReplaceProfiles(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceProfiles([]api.Profile{
		{Profile: "alpha-01", Email: "a@example.com"},
		{Profile: "alpha-02"},
	})

	if len(vm.Profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(vm.Profiles))
	}
	if vm.Profiles[0].Name != "alpha-01" || vm.Profiles[0].Email != "a@example.com" {
		t.Errorf("unexpected first profile: %+v", vm.Profiles[0])
	}

	// A second replace swaps the whole list
	vm = state.ReplaceProfiles(nil)
	if len(vm.Profiles) != 0 {
		t.Errorf("replace with empty set kept %d profiles", len(vm.Profiles))
	}
	got := state.GetViewModel(VMProfiles).(*ProfilesVM)
	if len(got.Profiles) != 0 {
		t.Errorf("state still serves the old list")
	}
}

func TestReplaceQuarantine(t *testing.T) {
	state := NewAppState(400)

	vm := state.ReplaceQuarantine([]api.QuarantineEntry{
		{Profile: "alpha-02", Failures: 3, NextAllowed: 1700000000},
		{Profile: "alpha-03", Failures: 1},
	})

	if len(vm.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(vm.Entries))
	}
	if vm.Entries[0].NextAllowed == RefreshRangeUnset {
		t.Error("timestamped entry should render a time")
	}
	if vm.Entries[1].NextAllowed != RefreshRangeUnset {
		t.Errorf("zero timestamp should render %q, got %q", RefreshRangeUnset, vm.Entries[1].NextAllowed)
	}
}

func TestPhaseTransitions(t *testing.T) {
	state := NewAppState(400)

	if state.GetPhase() != PhaseUnauthenticated {
		t.Errorf("initial phase = %q", state.GetPhase())
	}
	if state.IsLoggedIn() {
		t.Error("fresh state must not be logged in")
	}

	state.SetPhase(PhaseAuthenticating)
	if state.IsLoggedIn() {
		t.Error("authenticating is not logged in")
	}

	state.SetPhase(PhaseAuthenticated)
	if !state.IsLoggedIn() {
		t.Error("authenticated should be logged in")
	}

	state.SetPhase(PhaseEnded)
	if state.IsLoggedIn() {
		t.Error("ended session must not be logged in")
	}
}

func TestAddNotificationKeepsLastTen(t *testing.T) {
	state := NewAppState(400)

	for i := 0; i < 15; i++ {
		state.AddNotification(NewNotification(NotifyInfo, "t", fmt.Sprintf("msg-%d", i)))
	}

	if len(state.Notifications) != 10 {
		t.Fatalf("got %d notifications, want 10", len(state.Notifications))
	}
	if state.Notifications[9].Message != "msg-14" {
		t.Errorf("newest = %q, want msg-14", state.Notifications[9].Message)
	}
	if state.Notifications[0].Message != "msg-5" {
		t.Errorf("oldest = %q, want msg-5", state.Notifications[0].Message)
	}
}
