package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdesk/opsdesk/internal/interfaces/cli/admin"
	"github.com/opsdesk/opsdesk/internal/interfaces/cli/migrate"
	"github.com/opsdesk/opsdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "opsdesk",
		Short: "OpsDesk - internal ticketing and approval workflow service",
		Long:  `OpsDesk is a ticketing service with a role-gated approval workflow, served over a REST API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
