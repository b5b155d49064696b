package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/teamsctl/internal/graph/teams"
)

var (
	memberEmail  string
	memberAdd    []string
	memberRemove []string
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage a user's team memberships",
}

var memberApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Add and remove one user across teams",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if memberEmail == "" {
			return errors.New("--email is required")
		}
		if len(memberAdd) == 0 && len(memberRemove) == 0 {
			return errors.New("at least one of --add or --remove is required")
		}

		result, err := teamsService.ChangeMembership(cmd.Context(), teams.MembershipChange{
			UserEmail: memberEmail,
			Add:       memberAdd,
			Remove:    memberRemove,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	memberApplyCmd.Flags().StringVar(&memberEmail, "email", "", "user mail address")
	memberApplyCmd.Flags().StringSliceVar(&memberAdd, "add", nil, "team ids to add the user to")
	memberApplyCmd.Flags().StringSliceVar(&memberRemove, "remove", nil, "team ids to remove the user from")

	memberCmd.AddCommand(memberApplyCmd)
	rootCmd.AddCommand(memberCmd)
}
