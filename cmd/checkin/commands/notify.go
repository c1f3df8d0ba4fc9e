package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(notifyCmd)
}

var notifyCmd = &cobra.Command{
	Use:   "notify <message...>",
	Short: "Sends a message through every configured notifier, useful to test the bot setup.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tel := newTelemetry(nil)
		newNotifier(cfg, tel).Notify(cmd.Context(), strings.Join(args, " "))
		return nil
	},
}
