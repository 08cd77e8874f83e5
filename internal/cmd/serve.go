package cmd

import (
	"fmt"
	"strconv"

	"github.com/unscroll-app/unscroll/internal/config"
	"github.com/unscroll-app/unscroll/internal/server"
)

// ServeCmd serves the dashboard TUI over SSH
type ServeCmd struct {
	Host string `help:"Address to listen on" default:"localhost"`
	Port string `help:"Port to listen on" default:"2323"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	settings := cli.Settings()

	host := s.Host
	if host == "localhost" && settings.SSHHost != "" {
		host = settings.SSHHost
	}
	port := s.Port
	if port == "2323" && settings.SSHPort != nil {
		port = strconv.Itoa(*settings.SSHPort)
	}

	// Each SSH connection opens its own store, so release the CLI's handle
	// before the server starts.
	if err := cli.Container.Close(); err != nil {
		return fmt.Errorf("failed to release database: %w", err)
	}

	srv, err := server.NewServer(host, port, config.GetDBPath(), settings)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	return srv.Start()
}
