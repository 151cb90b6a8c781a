package commands

import (
	"errors"
	"fmt"

	"autosave/cmd/autosave/prompt"
	"autosave/models"
	"autosave/services/activity"
	"autosave/services/schedule"
	"autosave/utils"

	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage scheduled contributions",
	}
	cmd.AddCommand(scheduleCreateCmd())
	return cmd
}

// schedule create: walk through the three wizard steps and submit.
func scheduleCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a scheduled contribution interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := settings.GetString("token")
			if token == "" {
				return fmt.Errorf("token required (--token or AUTOSAVE_TOKEN)")
			}

			var tracker activity.Tracker = activity.Nop{}
			if verbose {
				tracker = &activity.LogTracker{Logger: utils.GetLogger()}
			}

			wizard := &prompt.Wizard{
				Driver:    prompt.NewSurveyDriver(),
				Catalog:   client,
				Submitter: &schedule.Submitter{Creator: client},
				Tracker:   tracker,
			}
			auth := models.AuthSession{UserID: settings.GetString("user"), Token: token}

			resp, err := wizard.Run(cmd.Context(), auth)
			if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schedule id: %s\n", resp.ID)
			return nil
		},
	}
}
