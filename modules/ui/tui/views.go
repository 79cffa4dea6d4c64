package tui

import (
	"fmt"
	"strings"

	"profiledeck/modules/ui/core"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 16

func (m *Model) mainWidth() int {
	w := m.width - sidebarWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) mainHeight() int {
	h := m.height - 4 // header + footer + borders
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the UI
func (m *Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMainContent()
	footer := m.renderFooter()

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.dialog != dialogNone {
		return m.overlayDialog(screen)
	}
	if m.showHelp {
		return m.overlayHelp(screen)
	}
	return screen
}

func (m *Model) renderHeader() string {
	title := HeaderStyle.Render("Profiledeck")

	var status string
	switch m.presenter.Phase() {
	case core.PhaseAuthenticated:
		status = StatusActive.Render("● connected")
	case core.PhaseAuthenticating:
		status = StatusWarning.Render(m.spinner.View() + " signing in")
	default:
		status = StatusIdle.Render("○ signed out")
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + status
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	for _, v := range viewOrder {
		label := viewTitles[v]
		if v == m.currentView {
			b.WriteString(SidebarActiveStyle.Render("▸ " + label))
		} else {
			b.WriteString(SidebarItemStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return SidebarStyle.Width(sidebarWidth).Height(m.mainHeight()).Render(b.String())
}

func (m *Model) renderMainContent() string {
	var content string
	switch m.currentView {
	case core.VMProfiles:
		content = m.renderProfiles()
	case core.VMLogs:
		content = m.logView.View()
	case core.VMQuarantine:
		content = m.renderQuarantine()
	default:
		content = m.renderDashboard()
	}
	return MainStyle.Width(m.mainWidth()).Height(m.mainHeight()).Render(content)
}

func (m *Model) renderDashboard() string {
	vm := m.dashboard
	if vm == nil {
		return SubtitleStyle.Render("No summary yet.")
	}

	rows := []string{
		TitleStyle.Render("Fleet summary"),
		"",
		fmt.Sprintf("  Total profiles   %d", vm.TotalProfiles),
		fmt.Sprintf("  Active           %d", vm.ActiveProfiles),
		fmt.Sprintf("  Quarantined      %d", vm.Quarantined),
		fmt.Sprintf("  In backoff       %d", vm.InBackoff),
		"",
		fmt.Sprintf("  Refresh          %s", renderRefreshStatus(vm.RefreshStatus)),
		fmt.Sprintf("  Rotation         %s", vm.RefreshRange),
		fmt.Sprintf("  Last cycle       %s", vm.LastCycle),
	}
	return strings.Join(rows, "\n")
}

func renderRefreshStatus(status string) string {
	if status == core.RefreshStatusLive {
		return StatusActive.Render(status)
	}
	return StatusIdle.Render(status)
}

func (m *Model) renderProfiles() string {
	vm := m.profiles
	if vm == nil || len(vm.Profiles) == 0 {
		return SubtitleStyle.Render("No profiles loaded.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Profiles (%d)", len(vm.Profiles))))
	b.WriteString("\n\n")

	visible := m.mainHeight() - 3
	start, end := windowRange(m.profileIndex, len(vm.Profiles), visible)
	for i := start; i < end; i++ {
		p := vm.Profiles[i]
		email := p.Email
		if email == "" {
			email = "-"
		}
		line := fmt.Sprintf(" %-20s %s", p.Name, email)
		if i == m.profileIndex {
			b.WriteString(SelectedRowStyle.Render(line))
		} else {
			b.WriteString(RowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderQuarantine() string {
	vm := m.quarantine
	if vm == nil || len(vm.Entries) == 0 {
		return SubtitleStyle.Render("Quarantine is empty.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Quarantined (%d)", len(vm.Entries))))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(" %-20s %8s  %s", "profile", "failures", "next allowed")))
	b.WriteString("\n")

	visible := m.mainHeight() - 4
	start, end := windowRange(m.quarantineIndex, len(vm.Entries), visible)
	for i := start; i < end; i++ {
		e := vm.Entries[i]
		line := fmt.Sprintf(" %-20s %8d  %s", e.Profile, e.Failures, e.NextAllowed)
		if i == m.quarantineIndex {
			b.WriteString(SelectedRowStyle.Render(line))
		} else {
			b.WriteString(RowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	if latest := m.latestNotice(); latest != nil {
		return FooterStyle.Render(renderNotice(latest))
	}

	var hints []string
	if m.presenter.Phase() == core.PhaseAuthenticated {
		switch m.currentView {
		case core.VMProfiles:
			hints = []string{"Enter launch", "L launch all", "c close all", "r refresh"}
		case core.VMQuarantine:
			hints = []string{"R reset", "r refresh"}
		default:
			hints = []string{"s/S auto-refresh", "f safe refresh", "L launch all"}
		}
	} else {
		hints = []string{"i sign in"}
	}
	hints = append(hints, "Tab view", "? help", "q quit")
	return FooterStyle.Render(strings.Join(hints, " · "))
}

func (m *Model) latestNotice() *core.Notification {
	if len(m.notices) == 0 {
		return nil
	}
	return m.notices[len(m.notices)-1].n
}

func renderNotice(n *core.Notification) string {
	text := n.Title
	if n.Message != "" {
		text += ": " + n.Message
	}
	switch n.Type {
	case core.NotifySuccess:
		return NotifySuccessStyle.Render(text)
	case core.NotifyError:
		return NotifyErrorStyle.Render(text)
	case core.NotifyWarning:
		return NotifyWarningStyle.Render(text)
	default:
		return NotifyInfoStyle.Render(text)
	}
}

func (m *Model) overlayDialog(screen string) string {
	var title string
	switch m.dialog {
	case dialogLogin:
		title = "Sign in"
	case dialogPassword:
		title = "Change password"
	case dialogProxies:
		title = "Add proxies"
	}

	box := DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(title),
		"",
		m.input.View(),
		"",
		SubtitleStyle.Render("Enter confirm · Esc cancel"),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) overlayHelp(screen string) string {
	lines := []string{
		TitleStyle.Render("Keys"),
		"",
		"  1-4 / Tab     switch view",
		"  ↑/↓ j/k       move selection",
		"  i             sign in",
		"  Enter         launch selected profile",
		"  L             launch all profiles",
		"  s / S         start / stop auto-refresh",
		"  f             safe refresh (one cycle)",
		"  c             close all profiles",
		"  x             add proxies",
		"  p             change panel password",
		"  R             reset selected quarantine",
		"  r             refresh data now",
		"  q             quit",
		"",
		SubtitleStyle.Render("any key to close"),
	}
	box := DialogStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// windowRange keeps the selected index visible in a list of the given size
func windowRange(selected, total, visible int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	if total <= visible {
		return 0, total
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > total {
		end = total
		start = end - visible
	}
	return start, end
}
