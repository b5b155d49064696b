package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	teamID          string
	teamName        string
	teamDescription string
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Inspect and manage teams",
}

var teamGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch a team by id or display name",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		switch {
		case teamID != "":
			team, err := teamsService.TeamByID(ctx, teamID)
			if err != nil {
				return err
			}
			return printJSON(team)
		case teamName != "":
			team, err := teamsService.TeamByName(ctx, teamName)
			if err != nil {
				return err
			}
			return printJSON(team)
		default:
			return errors.New("either --id or --name is required")
		}
	},
}

var teamMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members of a team",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		id := teamID
		if id == "" && teamName != "" {
			team, err := teamsService.TeamByName(ctx, teamName)
			if err != nil {
				return err
			}
			id = team.ID
		}
		if id == "" {
			return errors.New("either --id or --name is required")
		}

		members, err := teamsService.TeamMembers(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(members)
	},
}

var teamCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a new public team seeded with the admin owners",
	RunE: func(cmd *cobra.Command, _ []string) error {
		team, err := teamsService.CreateTeam(cmd.Context(), teamName, teamDescription)
		if err != nil {
			return err
		}
		return printJSON(team)
	},
}

func init() {
	teamCmd.PersistentFlags().StringVar(&teamID, "id", "", "team id")
	teamCmd.PersistentFlags().StringVar(&teamName, "name", "", "team display name")
	teamCreateCmd.Flags().StringVar(&teamDescription, "description", "", "team description")

	teamCmd.AddCommand(teamGetCmd)
	teamCmd.AddCommand(teamMembersCmd)
	teamCmd.AddCommand(teamCreateCmd)
	rootCmd.AddCommand(teamCmd)
}
