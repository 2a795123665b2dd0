// Package main implements the entry point for the admin API server: a
// multi-tenant back-office HTTP service with token authentication, admin
// account management and uniform error envelopes.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Abdallah-SE/ecommerce-api/config"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "adminapi"
)

var cfgFile string

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Admin API server",
		Long:    "HTTP backend for back-office administration: authentication, admin accounts, health and metrics.",
		Version: Version,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default: ./adminapi.yaml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

// loadConfig reads the configuration honoring the persistent --config flag
// and any flags bound on the invoking command.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(cfgFile, cmd.Flags())
}
