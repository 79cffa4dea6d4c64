package tui

import (
	"strings"
	"time"

	"profiledeck/modules/ui/core"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dialogMode identifies the active modal input, if any
type dialogMode int

const (
	dialogNone dialogMode = iota
	dialogLogin
	dialogPassword
	dialogProxies
)

// notice is a notification with its display deadline
type notice struct {
	n       *core.Notification
	expires time.Time
}

// viewOrder is the sidebar ordering
var viewOrder = []core.ViewModelType{
	core.VMDashboard,
	core.VMProfiles,
	core.VMLogs,
	core.VMQuarantine,
}

var viewTitles = map[core.ViewModelType]string{
	core.VMDashboard:  "Dashboard",
	core.VMProfiles:   "Profiles",
	core.VMLogs:       "Logs",
	core.VMQuarantine: "Quarantine",
}

// Model is the main Bubble Tea model for the control panel
type Model struct {
	presenter core.Presenter
	keys      KeyMap

	// UI state
	width       int
	height      int
	ready       bool
	currentView core.ViewModelType
	showHelp    bool

	// Cached view models, replaced on state updates
	dashboard  *core.DashboardVM
	profiles   *core.ProfilesVM
	logs       *core.LogsVM
	quarantine *core.QuarantineVM

	// Selection
	profileIndex    int
	quarantineIndex int

	// Widgets
	logView viewport.Model
	spinner spinner.Model
	input   textinput.Model
	dialog  dialogMode

	notices []notice
}

// Messages

type stateUpdateMsg struct {
	update core.StateUpdate
}

type notificationMsg struct {
	notification *core.Notification
}

type eventDoneMsg struct{}

type errMsg struct {
	err error
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// NewModel creates the TUI model
func NewModel(presenter core.Presenter) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 128

	return &Model{
		presenter:   presenter,
		keys:        DefaultKeyMap(),
		currentView: core.VMDashboard,
		spinner:     sp,
		input:       ti,
	}
}

// Init starts the background tickers and opens the login prompt
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tickCmd()}
	if m.presenter.Phase() == core.PhaseUnauthenticated {
		m.openDialog(dialogLogin)
	}
	return tea.Batch(cmds...)
}

// dispatch runs a presenter event off the UI goroutine
func (m *Model) dispatch(event *core.Event) tea.Cmd {
	return func() tea.Msg {
		if err := m.presenter.HandleEvent(event); err != nil {
			return errMsg{err: err}
		}
		return eventDoneMsg{}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logView = viewport.New(m.mainWidth(), m.mainHeight())
			m.refreshLogContent()
			m.ready = true
		} else {
			// Resize in place so the scroll position survives
			m.logView.Width = m.mainWidth()
			m.logView.Height = m.mainHeight()
		}

	case tea.KeyMsg:
		if m.dialog != dialogNone {
			cmd := m.handleDialogKey(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else if m.showHelp {
			m.showHelp = false
		} else {
			cmd := m.handleKeyPress(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case stateUpdateMsg:
		m.handleStateUpdate(msg.update)

	case notificationMsg:
		duration := time.Duration(msg.notification.Duration) * time.Second
		if duration <= 0 {
			duration = time.Hour
		}
		m.notices = append(m.notices, notice{
			n:       msg.notification,
			expires: time.Now().Add(duration),
		})

	case errMsg:
		// Command errors already arrive as notifications from the
		// presenter; this catches event plumbing failures only.

	case eventDoneMsg:

	case tickMsg:
		m.expireNotices()
		cmds = append(cmds, tickCmd())
	}

	return m, tea.Batch(cmds...)
}

// handleStateUpdate caches a fresh view model
func (m *Model) handleStateUpdate(update core.StateUpdate) {
	switch vm := update.ViewModel.(type) {
	case *core.DashboardVM:
		m.dashboard = vm
	case *core.ProfilesVM:
		m.profiles = vm
		if m.profileIndex >= len(vm.Profiles) {
			m.profileIndex = 0
		}
	case *core.LogsVM:
		m.logs = vm
		m.refreshLogContent()
	case *core.QuarantineVM:
		m.quarantine = vm
		if m.quarantineIndex >= len(vm.Entries) {
			m.quarantineIndex = 0
		}
	}
}

func (m *Model) refreshLogContent() {
	if m.logs == nil {
		return
	}
	m.logView.SetContent(strings.Join(m.logs.Lines, "\n"))
}

func (m *Model) expireNotices() {
	now := time.Now()
	kept := m.notices[:0]
	for _, n := range m.notices {
		if n.expires.After(now) {
			kept = append(kept, n)
		}
	}
	m.notices = kept
}

// openDialog activates a modal input
func (m *Model) openDialog(mode dialogMode) {
	m.dialog = mode
	m.input.Reset()
	switch mode {
	case dialogLogin:
		m.input.Placeholder = "panel password"
		m.input.EchoMode = textinput.EchoPassword
	case dialogPassword:
		m.input.Placeholder = "new password"
		m.input.EchoMode = textinput.EchoPassword
	case dialogProxies:
		m.input.Placeholder = "Profile 1=host:port, Profile 2=host:port"
		m.input.EchoMode = textinput.EchoNormal
	}
	m.input.Focus()
}

// handleDialogKey processes keys while a modal input is open
func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		mode := m.dialog
		m.dialog = dialogNone
		m.input.Blur()
		if mode == dialogLogin {
			return m.dispatch(core.NewEvent(core.EventLoginSubmit).WithValue(core.CancelledCredential()))
		}
		return nil

	case "enter":
		value := m.input.Value()
		mode := m.dialog
		m.dialog = dialogNone
		m.input.Blur()

		switch mode {
		case dialogLogin:
			return m.dispatch(core.NewEvent(core.EventLoginSubmit).WithValue(core.SubmittedCredential(value)))
		case dialogPassword:
			if value == "" {
				return nil
			}
			return m.dispatch(core.NewEvent(core.EventChangePassword).WithValue(value))
		case dialogProxies:
			proxies := parseProxyList(value)
			if len(proxies) == 0 {
				return nil
			}
			return m.dispatch(core.NewEvent(core.EventAddProxies).WithValue(proxies))
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// handleKeyPress processes keyboard input outside dialogs
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	loggedIn := m.presenter.Phase() == core.PhaseAuthenticated

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Sequence(m.dispatch(core.NewEvent(core.EventQuit)), tea.Quit)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil

	case key.Matches(msg, m.keys.SignIn):
		// Not while a login attempt is in flight
		if m.presenter.Phase() == core.PhaseUnauthenticated {
			m.openDialog(dialogLogin)
		}
		return nil

	case key.Matches(msg, m.keys.Tab):
		return m.cycleView()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return nil
	}

	// View shortcuts by number
	switch msg.String() {
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		return m.navigateTo(viewOrder[idx])
	}

	if !loggedIn {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		if m.currentView == core.VMProfiles {
			if p, ok := m.selectedProfile(); ok {
				return m.dispatch(core.NewEvent(core.EventLaunchProfile).
					WithProfile(p.Name).
					WithData("email", p.Email))
			}
		}
		return nil

	case key.Matches(msg, m.keys.LaunchAll):
		return m.dispatch(core.NewEvent(core.EventLaunchAll))

	case key.Matches(msg, m.keys.StartRefresh):
		return m.dispatch(core.NewEvent(core.EventStartRefresh))

	case key.Matches(msg, m.keys.StopRefresh):
		return m.dispatch(core.NewEvent(core.EventStopRefresh))

	case key.Matches(msg, m.keys.SafeRefresh):
		return m.dispatch(core.NewEvent(core.EventSafeRefresh))

	case key.Matches(msg, m.keys.CloseAll):
		return m.dispatch(core.NewEvent(core.EventCloseAll))

	case key.Matches(msg, m.keys.Proxies):
		m.openDialog(dialogProxies)
		return nil

	case key.Matches(msg, m.keys.Password):
		m.openDialog(dialogPassword)
		return nil

	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(core.NewEvent(core.EventRefresh))

	case key.Matches(msg, m.keys.Reset):
		if m.currentView == core.VMQuarantine {
			if e, ok := m.selectedQuarantine(); ok {
				return m.dispatch(core.NewEvent(core.EventResetQuarantine).WithProfile(e.Profile))
			}
		}
		return nil
	}

	return nil
}

// cycleView moves to the next view in sidebar order
func (m *Model) cycleView() tea.Cmd {
	for i, v := range viewOrder {
		if v == m.currentView {
			return m.navigateTo(viewOrder[(i+1)%len(viewOrder)])
		}
	}
	return m.navigateTo(core.VMDashboard)
}

func (m *Model) navigateTo(view core.ViewModelType) tea.Cmd {
	m.currentView = view
	cmds := []tea.Cmd{m.dispatch(core.NewEvent(core.EventNavigate).WithTarget(string(view)))}
	// Quarantine is fetched on demand, not polled
	if view == core.VMQuarantine && m.presenter.Phase() == core.PhaseAuthenticated {
		cmds = append(cmds, m.dispatch(core.NewEvent(core.EventLoadQuarantine)))
	}
	return tea.Batch(cmds...)
}

func (m *Model) moveSelection(delta int) {
	switch m.currentView {
	case core.VMProfiles:
		if m.profiles == nil || len(m.profiles.Profiles) == 0 {
			return
		}
		m.profileIndex = clamp(m.profileIndex+delta, 0, len(m.profiles.Profiles)-1)
	case core.VMQuarantine:
		if m.quarantine == nil || len(m.quarantine.Entries) == 0 {
			return
		}
		m.quarantineIndex = clamp(m.quarantineIndex+delta, 0, len(m.quarantine.Entries)-1)
	case core.VMLogs:
		if delta < 0 {
			m.logView.LineUp(1)
		} else {
			m.logView.LineDown(1)
		}
	}
}

func (m *Model) selectedProfile() (core.ProfileVM, bool) {
	if m.profiles == nil || m.profileIndex >= len(m.profiles.Profiles) {
		return core.ProfileVM{}, false
	}
	return m.profiles.Profiles[m.profileIndex], true
}

func (m *Model) selectedQuarantine() (core.QuarantineEntryVM, bool) {
	if m.quarantine == nil || m.quarantineIndex >= len(m.quarantine.Entries) {
		return core.QuarantineEntryVM{}, false
	}
	return m.quarantine.Entries[m.quarantineIndex], true
}

func parseProxyList(value string) map[string]string {
	proxies := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		proxies[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return proxies
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
