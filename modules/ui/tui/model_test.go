package tui

import (
	"context"
	"fmt"
	"testing"

	"profiledeck/modules/ui/core"

	tea "github.com/charmbracelet/bubbletea"
)

// stubPresenter satisfies core.Presenter for model-only tests
type stubPresenter struct{}

func (stubPresenter) Initialize(context.Context) error                        { return nil }
func (stubPresenter) HandleEvent(*core.Event) error                           { return nil }
func (stubPresenter) GetViewModel(core.ViewModelType) (core.ViewModel, error) { return nil, nil }
func (stubPresenter) Phase() core.SessionPhase                                { return core.PhaseAuthenticated }
func (stubPresenter) Subscribe(func(core.StateUpdate))                        {}
func (stubPresenter) SubscribeNotifications(func(*core.Notification))         {}
func (stubPresenter) Refresh() error                                          { return nil }
func (stubPresenter) Shutdown() error                                         { return nil }

func TestResizeKeepsLogScrollPosition(t *testing.T) {
	m := NewModel(stubPresenter{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	m.handleStateUpdate(core.StateUpdate{
		ViewType: core.VMLogs,
		ViewModel: &core.LogsVM{
			BaseViewModel: core.BaseViewModel{VMType: core.VMLogs},
			Lines:         lines,
			MaxLines:      400,
		},
	})

	m.logView.LineDown(5)
	offset := m.logView.YOffset
	if offset == 0 {
		t.Fatal("viewport did not scroll")
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.logView.YOffset != offset {
		t.Errorf("scroll offset reset on resize: %d -> %d", offset, m.logView.YOffset)
	}
	if m.logView.Width != m.mainWidth() || m.logView.Height != m.mainHeight() {
		t.Errorf("viewport not resized: %dx%d", m.logView.Width, m.logView.Height)
	}
}

func TestParseProxyList(t *testing.T) {
	got := parseProxyList("alpha-01=socks5://10.0.0.2:1080, alpha-02 = host:8080")
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got["alpha-01"] != "socks5://10.0.0.2:1080" {
		t.Errorf("alpha-01 = %q", got["alpha-01"])
	}
	if got["alpha-02"] != "host:8080" {
		t.Errorf("alpha-02 = %q", got["alpha-02"])
	}
}

func TestParseProxyListSkipsMalformed(t *testing.T) {
	got := parseProxyList("no-separator, =orphan-proxy, name=, good=proxy:1")
	if len(got) != 1 {
		t.Fatalf("got %v, want only the valid pair", got)
	}
	if got["good"] != "proxy:1" {
		t.Errorf("good = %q", got["good"])
	}
}

func TestParseProxyListEmpty(t *testing.T) {
	if got := parseProxyList(""); len(got) != 0 {
		t.Errorf("empty input produced %v", got)
	}
}

func TestWindowRange(t *testing.T) {
	cases := []struct {
		selected, total, visible int
		wantStart, wantEnd       int
	}{
		{0, 3, 10, 0, 3},   // everything fits
		{0, 20, 5, 0, 5},   // top of a long list
		{10, 20, 5, 8, 13}, // centered on selection
		{19, 20, 5, 15, 20}, // bottom of a long list
		{0, 0, 5, 0, 0},    // empty list
	}

	for _, tc := range cases {
		start, end := windowRange(tc.selected, tc.total, tc.visible)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Errorf("windowRange(%d,%d,%d) = (%d,%d), want (%d,%d)",
				tc.selected, tc.total, tc.visible, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestClamp(t *testing.T) {
	if clamp(-1, 0, 5) != 0 {
		t.Error("clamp below range")
	}
	if clamp(7, 0, 5) != 5 {
		t.Error("clamp above range")
	}
	if clamp(3, 0, 5) != 3 {
		t.Error("clamp inside range")
	}
}
