package commands

import (
	"profiledeck/modules/platform/api"
	"profiledeck/modules/platform/config"
)

// AppContext holds application-wide context
type AppContext struct {
	Config     *config.Config
	ConfigPath string
	Client     *api.Client
}

var globalContext *AppContext

// InitContext initializes the application context
func InitContext() error {
	if globalContext != nil {
		return nil
	}

	cfg := config.GetGlobal()
	configPath := config.GetGlobalPath()

	client := api.NewClientWithTimeout(cfg.Settings.ServerURL, cfg.Settings.RequestTimeout())

	globalContext = &AppContext{
		Config:     cfg,
		ConfigPath: configPath,
		Client:     client,
	}

	return nil
}

// GetContext returns the global application context
func GetContext() *AppContext {
	return globalContext
}

// registerSessionCommands registers authentication commands
func registerSessionCommands() {
	RegisterCommand(&Command{
		Name:        "login",
		Category:    "Session",
		Description: "Authenticate against the control server",
		Usage:       "profiledeck login",
		Examples: []string{
			"profiledeck login",
			"PROFILEDECK_PASSWORD=secret profiledeck login",
		},
		Handler: loginCommand,
		Order:   10,
	})

	RegisterCommand(&Command{
		Name:        "passwd",
		Category:    "Session",
		Description: "Change the control server password",
		Usage:       "profiledeck passwd",
		Examples: []string{
			"profiledeck passwd",
		},
		Handler: passwdCommand,
		Order:   11,
	})
}

// registerFleetCommands registers profile fleet commands
func registerFleetCommands() {
	RegisterCommand(&Command{
		Name:        "profiles",
		Aliases:     []string{"ls"},
		Category:    "Fleet",
		Description: "List configured browser profiles",
		Usage:       "profiledeck profiles [--json]",
		Examples: []string{
			"profiledeck profiles",
			"profiledeck ls --json",
		},
		Handler: profilesCommand,
		Order:   20,
	})

	RegisterCommand(&Command{
		Name:        "launch",
		Category:    "Fleet",
		Description: "Launch a single profile",
		Usage:       "profiledeck launch <profile> [email]",
		Examples: []string{
			"profiledeck launch alpha-01",
			"profiledeck launch alpha-01 user@example.com",
		},
		Handler: launchCommand,
		Order:   21,
	})

	RegisterCommand(&Command{
		Name:        "launch-all",
		Aliases:     []string{"la"},
		Category:    "Fleet",
		Description: "Launch every configured profile",
		Usage:       "profiledeck launch-all",
		Examples: []string{
			"profiledeck launch-all",
		},
		Handler: launchAllCommand,
		Order:   22,
	})

	RegisterCommand(&Command{
		Name:        "refresh",
		Category:    "Fleet",
		Description: "Control the rotation engine",
		Usage:       "profiledeck refresh <start|stop|safe>",
		SubCommands: []SubCommand{
			{Name: "start", Description: "Start rotating refreshes"},
			{Name: "stop", Description: "Stop rotating refreshes"},
			{Name: "safe", Description: "Run a single safe refresh pass"},
		},
		Examples: []string{
			"profiledeck refresh start",
			"profiledeck refresh stop",
			"profiledeck refresh safe",
		},
		Handler: refreshCommand,
		Order:   23,
	})

	RegisterCommand(&Command{
		Name:        "proxies",
		Category:    "Fleet",
		Description: "Assign proxies to profiles",
		Usage:       "profiledeck proxies <profile=proxy> [...]",
		Examples: []string{
			"profiledeck proxies alpha-01=socks5://10.0.0.2:1080",
			"profiledeck proxies a=proxy1:8080 b=proxy2:8080",
		},
		Handler: proxiesCommand,
		Order:   24,
	})

	RegisterCommand(&Command{
		Name:        "close-all",
		Aliases:     []string{"ca"},
		Category:    "Fleet",
		Description: "Close every open browser window",
		Usage:       "profiledeck close-all",
		Examples: []string{
			"profiledeck close-all",
		},
		Handler: closeAllCommand,
		Order:   25,
	})

	RegisterCommand(&Command{
		Name:        "logs",
		Aliases:     []string{"log"},
		Category:    "Fleet",
		Description: "Show recent server activity",
		Usage:       "profiledeck logs [-n <count>]",
		Examples: []string{
			"profiledeck logs",
			"profiledeck logs -n 50",
		},
		Handler: logsCommand,
		Order:   26,
	})

	RegisterCommand(&Command{
		Name:        "summary",
		Aliases:     []string{"sum"},
		Category:    "Fleet",
		Description: "Show the fleet summary",
		Usage:       "profiledeck summary [--json]",
		Examples: []string{
			"profiledeck summary",
			"profiledeck sum --json",
		},
		Handler: summaryCommand,
		Order:   27,
	})
}

// registerQuarantineCommands registers quarantine commands
func registerQuarantineCommands() {
	RegisterCommand(&Command{
		Name:        "quarantine",
		Aliases:     []string{"quar"},
		Category:    "Quarantine",
		Description: "Inspect and reset quarantined profiles",
		Usage:       "profiledeck quarantine <list|reset> [profile]",
		SubCommands: []SubCommand{
			{Name: "list", Description: "List quarantined profiles"},
			{Name: "reset", Description: "Clear a profile's quarantine state"},
		},
		Examples: []string{
			"profiledeck quarantine list",
			"profiledeck quarantine reset alpha-01",
		},
		Handler: quarantineCommand,
		Order:   30,
	})
}

// registerDiagnosticsCommands registers diagnostic commands
func registerDiagnosticsCommands() {
	RegisterCommand(&Command{
		Name:        "doctor",
		Category:    "Diagnostics",
		Description: "Diagnose configuration and server reachability",
		Usage:       "profiledeck doctor",
		Examples: []string{
			"profiledeck doctor",
		},
		Handler: doctorCommand,
		Order:   40,
	})
}

// registerUICommands registers UI-related commands
func registerUICommands() {
	RegisterCommand(&Command{
		Name:        "panel",
		Aliases:     []string{"ui"},
		Category:    "Interface",
		Description: "Launch the TUI control panel",
		Usage:       "profiledeck panel",
		Examples: []string{
			"profiledeck panel",
		},
		Handler: panelCommand,
		Order:   50,
	})

	RegisterCommand(&Command{
		Name:        "shell",
		Aliases:     []string{"sh"},
		Category:    "Interface",
		Description: "Start interactive shell",
		Usage:       "profiledeck shell",
		Examples: []string{
			"profiledeck shell",
			"profiledeck sh",
		},
		Handler: shellCommand,
		Order:   51,
	})
}
