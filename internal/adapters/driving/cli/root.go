// Package cli wires the teamsctl commands. Each command is a thin typed
// call into a service; no routing or dispatch logic lives here.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/teamsctl/internal/core/ports/driven"
	"github.com/custodia-labs/teamsctl/internal/core/services"
	"github.com/custodia-labs/teamsctl/internal/graph/teams"
	"github.com/custodia-labs/teamsctl/internal/logger"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	teamsService *teams.Service
	collector    services.Collector
	statsStore   driven.StatsStore
	scheduler    *services.Scheduler
)

// Services holds injected service implementations for CLI commands.
type Services struct {
	Teams     *teams.Service
	Collector services.Collector
	Stats     driven.StatsStore
	Scheduler *services.Scheduler
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	teamsService = s.Teams
	collector = s.Collector
	statsStore = s.Stats
	scheduler = s.Scheduler
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "teamsctl",
	Short: "Microsoft Teams administration over Microsoft Graph",
	Long: `Teamsctl administers Microsoft Teams through the Microsoft Graph API:
team and membership management plus background collection of per-team
message statistics.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}

// printJSON writes a value to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
