package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	statsTeamID   string
	statsTeamName string
	statsStored   bool
)

// statsCmd computes (or fetches the stored) message statistics for a team.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute message statistics for a team",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		teamID := statsTeamID
		if teamID == "" && statsTeamName != "" {
			team, err := teamsService.TeamByName(ctx, statsTeamName)
			if err != nil {
				return err
			}
			teamID = team.ID
		}
		if teamID == "" {
			return errors.New("either --team or --name is required")
		}

		if statsStored {
			stored, err := statsStore.LatestTeamStats(ctx, teamID)
			if err != nil {
				return err
			}
			return printJSON(stored)
		}

		result, err := collector.TeamStats(ctx, teamID)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsTeamID, "team", "", "team id")
	statsCmd.Flags().StringVar(&statsTeamName, "name", "", "team display name (resolved to an id)")
	statsCmd.Flags().BoolVar(&statsStored, "stored", false, "print the most recently stored result instead of collecting")
	rootCmd.AddCommand(statsCmd)
}
