package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/unscroll-app/unscroll/internal/config"
	"github.com/unscroll-app/unscroll/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run      RunCmd      `cmd:"" help:"Start the unscroll dashboard TUI (default)" default:"1"`
	Start    StartCmd    `cmd:"start" help:"Start tracking a session"`
	Stop     StopCmd     `cmd:"stop" help:"Close a session and settle XP"`
	Status   StatusCmd   `cmd:"status" help:"Show the active session, if any"`
	Sessions SessionsCmd `cmd:"sessions" help:"Manage the session ledger"`
	Stats    StatsCmd    `cmd:"stats" help:"Show XP, level, and streak"`
	Streak   StreakCmd   `cmd:"streak" help:"Show the current streak"`
	Plan     PlanCmd     `cmd:"plan" help:"Manage the weekly plan"`
	Account  AccountCmd  `cmd:"account" help:"Manage the signed-in account"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the dashboard TUI over SSH"`
	Reset    ResetCmd    `cmd:"reset" help:"Wipe all local data"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// Settings returns the loaded settings, never nil
func (c *CLI) Settings() *config.Settings {
	if c.settings == nil {
		return &config.Settings{}
	}
	return c.settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		// Apply MaxLogFiles setting
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("UNSCROLL_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		// Apply Debug setting
		if !c.Debug {
			if _, hasEnv := os.LookupEnv("UNSCROLL_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes inherit
	// debug settings and append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("UNSCROLL_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("UNSCROLL_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("UNSCROLL_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the storage layer's
	// logger has somewhere to write
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
