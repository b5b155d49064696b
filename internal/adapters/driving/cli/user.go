package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var userEmail string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect directory users",
}

var userTeamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams a user has joined",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if userEmail == "" {
			return errors.New("--email is required")
		}
		joined, err := teamsService.UserTeams(cmd.Context(), userEmail)
		if err != nil {
			return err
		}
		return printJSON(joined)
	},
}

func init() {
	userCmd.PersistentFlags().StringVar(&userEmail, "email", "", "user mail address")

	userCmd.AddCommand(userTeamsCmd)
	rootCmd.AddCommand(userCmd)
}
