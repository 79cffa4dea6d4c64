package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"profiledeck/modules"
	"profiledeck/modules/commands"
	"profiledeck/modules/platform/config"
	"profiledeck/modules/platform/logger"
)

func main() {
	// Parse global flags
	args := os.Args[1:]
	configPath := ""
	verbose := false

	// Extract global flags
	var cmdArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--verbose" || arg == "-v":
			verbose = true
		case arg == "--version" || arg == "-V":
			printVersion()
			return
		case arg == "--help" || arg == "-h":
			printHelp()
			return
		default:
			cmdArgs = append(cmdArgs, arg)
		}
	}

	// Load configuration
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	if err := config.LoadGlobal(configPath); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		}
	}

	setupLogger(verbose)

	// Initialize command registry
	commands.InitRegistry()

	// Default to the TUI control panel
	if len(cmdArgs) == 0 {
		cmdArgs = []string{"panel"}
	}

	cmdName := cmdArgs[0]
	cmdRemainingArgs := cmdArgs[1:]

	// Handle special commands
	switch cmdName {
	case "version":
		printVersion()
		return
	case "help":
		if len(cmdRemainingArgs) > 0 {
			commands.PrintCommandHelp(cmdRemainingArgs[0])
		} else {
			printHelp()
		}
		return
	}

	// Look up command in registry
	cmd := commands.GetCommand(cmdName)
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmdName)
		fmt.Fprintf(os.Stderr, "Run 'profiledeck help' for usage.\n")
		os.Exit(1)
	}

	// Execute command
	if err := cmd.Handler(cmdRemainingArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger configures the global logger from config, raising the level
// to debug when --verbose is set
func setupLogger(verbose bool) {
	logCfg := config.GetGlobal().Settings.GetLoggerConfig()

	level := logger.ParseLevel(logCfg.Level)
	if verbose {
		level = logger.DEBUG
	}

	logPath := logCfg.FilePath
	if logPath == "" {
		logPath = config.GetDefaultLogPath()
	}

	var outputs []io.Writer
	if f, err := logger.CreateLogFile(logPath); err == nil {
		outputs = append(outputs, f)
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Warning: Failed to open log file: %v\n", err)
	}
	if logCfg.Console || verbose {
		outputs = append(outputs, os.Stderr)
	}

	if len(outputs) > 0 {
		logger.SetGlobalLogger(logger.NewLogger(level, outputs))
	}
}

func printVersion() {
	fmt.Printf("profiledeck version %s\n", modules.AppVersion)
	fmt.Printf("Build: %s\n", modules.BuildHash())
}

func printHelp() {
	fmt.Printf("profiledeck - %s\n", modules.AppDescription)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  profiledeck [flags] [command] [arguments]")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  -c, --config <path>    Path to config file")
	fmt.Println("  -v, --verbose          Verbose output")
	fmt.Println("  -V, --version          Print version")
	fmt.Println("  -h, --help             Print help")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println()

	commands.PrintCommands()

	fmt.Println()
	fmt.Println("Use 'profiledeck help <command>' for more information about a command.")
}
