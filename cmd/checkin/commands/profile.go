package commands

import (
	"fmt"
	"strconv"
	"zhuimi-checkin/internal/components/chrono"
	"zhuimi-checkin/internal/zhuimi"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

func renderProfile(auth zhuimi.AuthResult, profile zhuimi.Profile) string {
	orUnknown := func(v *string) string {
		if v == nil {
			return "unknown"
		}
		return *v
	}

	t := table.NewWriter()
	t.SetTitle("zhuimi account")
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Token", orUnknown(auth.Token)},
		{"API count", orUnknown(auth.ApiCount)},
		{"API link", profile.ApiLink},
		{"Expires", profile.ExpireText},
		{"Remaining days", strconv.Itoa(profile.RemainingDays)},
	})
	t.SetStyle(table.StyleLight)
	return t.Render()
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Logs in and prints the account status without checking in or notifying.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tel := newTelemetry(nil)

		client, err := zhuimi.NewClient(cfg.ClientOptions(), tel)
		if err != nil {
			return err
		}
		auth, err := client.Login(cmd.Context(), cfg.Credentials())
		if err != nil {
			return err
		}
		profile, err := client.FetchProfile(cmd.Context(), chrono.NewStandardImpl(chrono.Shanghai()).Now())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderProfile(auth, profile))
		return nil
	},
}
