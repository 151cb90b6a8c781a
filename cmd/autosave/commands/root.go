package commands

import (
	"errors"
	"time"

	"autosave/services/coreapi"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	settings = viper.New()
	client   *coreapi.Client
	verbose  bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "autosave",
		Short:         "Create scheduled savings contributions from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			base := settings.GetString("api_url")
			if base == "" {
				return errors.New("savings API URL required (--api or AUTOSAVE_API_URL)")
			}
			client = coreapi.NewClient(base, settings.GetDuration("timeout"))
			return nil
		},
	}

	root.PersistentFlags().String("api", "", "savings API base URL (e.g. https://api.example.com/api/v1)")
	root.PersistentFlags().String("token", "", "bearer token for the savings API")
	root.PersistentFlags().String("user", "", "user id recorded with activity events")
	root.PersistentFlags().Duration("timeout", 15*time.Second, "savings API request timeout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log wizard activity")

	settings.SetEnvPrefix("AUTOSAVE")
	settings.AutomaticEnv()
	_ = settings.BindPFlag("api_url", root.PersistentFlags().Lookup("api"))
	_ = settings.BindPFlag("token", root.PersistentFlags().Lookup("token"))
	_ = settings.BindPFlag("user", root.PersistentFlags().Lookup("user"))
	_ = settings.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(scheduleCmd())
	return root.Execute()
}
