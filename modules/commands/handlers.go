package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const passwordEnv = "PROFILEDECK_PASSWORD"

// promptPassword reads a password without echo when stdin is a TTY
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	// Non-TTY: read one line (pipes, scripts)
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return line, nil
}

// ensureLogin authenticates the shared client if it has no session yet.
// The password comes from PROFILEDECK_PASSWORD or an interactive prompt.
func ensureLogin(ctx context.Context) error {
	appCtx := GetContext()
	if appCtx.Client.HasToken() {
		return nil
	}

	password := os.Getenv(passwordEnv)
	if password == "" {
		var err error
		password, err = promptPassword("Password")
		if err != nil {
			return err
		}
	}

	if err := appCtx.Client.Login(ctx, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

// loginCommand handles the 'login' command
func loginCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	fmt.Println("Login successful.")
	return nil
}

// passwdCommand handles the 'passwd' command
func passwdCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	newPassword, err := promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}
	if newPassword == "" {
		return fmt.Errorf("password must not be empty")
	}

	if err := GetContext().Client.ChangePassword(ctx, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println("Password changed.")
	return nil
}

// profilesCommand handles the 'profiles' command
func profilesCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	profiles, err := GetContext().Client.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(profiles, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profiles: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles configured on the server.")
		return nil
	}

	fmt.Printf("Profiles (%d):\n\n", len(profiles))
	for _, p := range profiles {
		if p.Email != "" {
			fmt.Printf("  %-24s %s\n", p.Profile, p.Email)
		} else {
			fmt.Printf("  %s\n", p.Profile)
		}
	}

	return nil
}

// launchCommand handles the 'launch' command
func launchCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if len(args) == 0 {
		return fmt.Errorf("profile name is required\nUsage: profiledeck launch <profile> [email]")
	}

	profile := args[0]
	email := ""
	if len(args) > 1 {
		email = args[1]
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	if err := GetContext().Client.Launch(ctx, profile, email); err != nil {
		return fmt.Errorf("failed to launch %s: %w", profile, err)
	}

	fmt.Printf("Launched profile: %s\n", profile)
	return nil
}

// launchAllCommand handles the 'launch-all' command
func launchAllCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	if err := GetContext().Client.LaunchAll(ctx); err != nil {
		return fmt.Errorf("failed to launch all profiles: %w", err)
	}

	fmt.Println("Launching all profiles.")
	return nil
}

// refreshCommand handles the 'refresh' command
func refreshCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand is required\nUsage: profiledeck refresh <start|stop|safe>")
	}

	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	client := GetContext().Client

	switch args[0] {
	case "start":
		if err := client.StartRefresh(ctx); err != nil {
			return fmt.Errorf("failed to start refresh: %w", err)
		}
		fmt.Println("Rotation started.")
	case "stop":
		if err := client.StopRefresh(ctx); err != nil {
			return fmt.Errorf("failed to stop refresh: %w", err)
		}
		fmt.Println("Rotation stopped.")
	case "safe":
		if err := client.SafeRefresh(ctx); err != nil {
			return fmt.Errorf("failed to run safe refresh: %w", err)
		}
		fmt.Println("Safe refresh pass started.")
	default:
		return fmt.Errorf("unknown refresh subcommand: %s", args[0])
	}

	return nil
}

// parseProxyArgs parses profile=proxy pairs
func parseProxyArgs(args []string) (map[string]string, error) {
	proxies := make(map[string]string, len(args))
	for _, arg := range args {
		name, proxy, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		proxy = strings.TrimSpace(proxy)
		if !ok || name == "" || proxy == "" {
			return nil, fmt.Errorf("invalid proxy assignment %q, expected profile=proxy", arg)
		}
		proxies[name] = proxy
	}
	return proxies, nil
}

// proxiesCommand handles the 'proxies' command
func proxiesCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one assignment is required\nUsage: profiledeck proxies <profile=proxy> [...]")
	}

	proxies, err := parseProxyArgs(args)
	if err != nil {
		return err
	}

	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	if err := GetContext().Client.AddProxies(ctx, proxies); err != nil {
		return fmt.Errorf("failed to add proxies: %w", err)
	}

	fmt.Printf("Assigned %d proxies.\n", len(proxies))
	return nil
}

// closeAllCommand handles the 'close-all' command
func closeAllCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	if err := GetContext().Client.CloseAll(ctx); err != nil {
		return fmt.Errorf("failed to close windows: %w", err)
	}

	fmt.Println("Closed all browser windows.")
	return nil
}

// logsCommand handles the 'logs' command
func logsCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	count := 0
	for i := 0; i < len(args); i++ {
		if (args[i] == "-n" || args[i] == "--count") && i+1 < len(args) {
			fmt.Sscanf(args[i+1], "%d", &count)
			i++
		}
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	logs, err := GetContext().Client.Logs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Println("No log entries.")
		return nil
	}

	// Server order is chronological; show the tail
	if count > 0 && count < len(logs) {
		logs = logs[len(logs)-count:]
	}

	for _, line := range logs {
		fmt.Println(line)
	}

	return nil
}

// summaryCommand handles the 'summary' command
func summaryCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	summary, err := GetContext().Client.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch summary: %w", err)
	}

	if summary == nil {
		fmt.Println("No summary available.")
		return nil
	}

	if jsonOutput {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	active := summary.TotalProfiles - summary.QuarantinedCount - summary.ProfilesInBackoff
	if active < 0 {
		active = 0
	}

	status := "Idle"
	if summary.LastCycleTime > 0 {
		status = "Rotating"
	}

	fmt.Println("Fleet Summary:")
	fmt.Printf("  Total profiles:  %d\n", summary.TotalProfiles)
	fmt.Printf("  Active:          %d\n", active)
	fmt.Printf("  Quarantined:     %d\n", summary.QuarantinedCount)
	fmt.Printf("  In backoff:      %d\n", summary.ProfilesInBackoff)
	fmt.Printf("  Rotation:        %s\n", status)
	if summary.RotationGroups > 0 {
		fmt.Printf("  Current group:   group %d/%d (%d profiles)\n",
			summary.CurrentGroupIndex+1, summary.RotationGroups, summary.CurrentGroupSize)
	}
	if summary.LastCycleTime > 0 {
		cycle := time.Unix(int64(summary.LastCycleTime), 0)
		fmt.Printf("  Last cycle:      %s\n", cycle.Format("2006-01-02 15:04:05"))
	}

	return nil
}

// quarantineCommand handles the 'quarantine' command
func quarantineCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand is required\nUsage: profiledeck quarantine <list|reset> [profile]")
	}

	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	if err := ensureLogin(ctx); err != nil {
		return err
	}

	client := GetContext().Client

	switch args[0] {
	case "list", "ls":
		entries, err := client.Quarantine(ctx)
		if err != nil {
			return fmt.Errorf("failed to list quarantine: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No quarantined profiles.")
			return nil
		}

		fmt.Printf("Quarantined profiles (%d):\n\n", len(entries))
		for _, e := range entries {
			next := time.Unix(int64(e.NextAllowed), 0).Format("15:04:05")
			fmt.Printf("  %-24s failures: %-3d next allowed: %s\n", e.Profile, e.Failures, next)
		}
		return nil

	case "reset":
		if len(args) < 2 {
			return fmt.Errorf("profile name is required\nUsage: profiledeck quarantine reset <profile>")
		}
		profile := args[1]
		if err := client.ResetQuarantine(ctx, profile); err != nil {
			return fmt.Errorf("failed to reset quarantine: %w", err)
		}
		fmt.Printf("Cleared quarantine for: %s\n", profile)
		return nil

	default:
		return fmt.Errorf("unknown quarantine subcommand: %s", args[0])
	}
}

// shellCommand handles the 'shell' command
func shellCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return StartShell()
}
