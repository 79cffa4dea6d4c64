package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"profiledeck/modules/platform/api"
	"profiledeck/modules/platform/config"
	"profiledeck/modules/platform/system"
)

// doctorCommand handles the 'doctor' command
func doctorCommand(args []string) error {
	if err := InitContext(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	appCtx := GetContext()
	cfg := appCtx.Config

	fmt.Println("Profiledeck Doctor")
	fmt.Println()

	// Configuration
	fmt.Println("Configuration:")
	if appCtx.ConfigPath != "" {
		fmt.Printf("  ok   config file: %s\n", appCtx.ConfigPath)
	} else {
		fmt.Printf("  --   no config file found, using defaults (%s)\n", config.DefaultConfigFileName)
	}
	fmt.Printf("  ok   server url: %s\n", cfg.Settings.ServerURL)
	fmt.Printf("  ok   poll intervals: logs %s, summary %s\n",
		cfg.Settings.LogPollInterval(), cfg.Settings.SummaryPollInterval())

	// Server reachability
	fmt.Println()
	fmt.Println("Server:")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := appCtx.Client.Ping(ctx); err != nil {
		var terr *api.TransportError
		if errors.As(err, &terr) {
			fmt.Printf("  fail server responded with HTTP %d\n", terr.Status)
		} else {
			fmt.Printf("  fail server unreachable: %v\n", err)
		}
	} else {
		fmt.Println("  ok   server reachable")
	}

	// Local process probe, only meaningful for a local server
	if port := localServerPort(cfg.Settings.ServerURL); port != 0 {
		proc, err := system.FindServerProcess(port)
		switch {
		case err != nil:
			fmt.Printf("  --   process probe failed: %v\n", err)
		case proc == nil:
			fmt.Printf("  --   no process listening on port %d\n", port)
		default:
			fmt.Printf("  ok   %s (pid %d) listening on port %d\n", proc.Name, proc.PID, port)
		}
	}

	// Host snapshot
	snap := system.Collect()
	fmt.Println()
	fmt.Println("Host:")
	fmt.Printf("  cpu:  %.1f%% across %d cores\n", snap.CPUPercent, snap.NumCPU)
	fmt.Printf("  mem:  %.1f / %.1f GB (%.1f%%)\n", snap.MemUsedGB, snap.MemTotalGB, snap.MemPercent)
	fmt.Printf("  load: %.2f\n", snap.LoadAvg1)

	return nil
}

// localServerPort extracts the port when the server URL points at this host
func localServerPort(serverURL string) uint32 {
	u, err := url.Parse(serverURL)
	if err != nil {
		return 0
	}

	host := u.Hostname()
	if host != "127.0.0.1" && host != "localhost" && host != "::1" {
		return 0
	}

	port, err := strconv.ParseUint(u.Port(), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(port)
}
