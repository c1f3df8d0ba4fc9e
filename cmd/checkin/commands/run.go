package commands

import (
	"zhuimi-checkin/internal/checkin"
	"zhuimi-checkin/internal/components/chrono"
	"zhuimi-checkin/internal/components/metrics"
	"zhuimi-checkin/internal/zhuimi"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path/to/checkin.json5>]",
	Short: "Logs in, scrapes the dashboard, checks in and sends the summary.",
	Args:  cobra.NoArgs,
	RunE:  runCheckin,
}

// runCheckin only fails if the config cannot be read, every failure of the
// workflow itself is reported through the notification.
func runCheckin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	tel := newTelemetry(rec)

	client, err := zhuimi.NewClient(cfg.ClientOptions(), tel)
	if err != nil {
		return err
	}

	runner := checkin.NewRunner(
		client,
		newNotifier(cfg, tel),
		chrono.NewStandardImpl(chrono.Shanghai()),
		tel,
	)
	runner.Out = cmd.OutOrStdout()
	runner.Metrics = rec

	report := runner.Run(cmd.Context(), cfg.Credentials())
	tel.ReportInfo("run finished", string(report.Stage))

	if cfg.MetricsFile != "" {
		err = rec.WriteTextfile(cfg.MetricsFile)
		if err != nil {
			tel.ReportWarning("metrics.write-textfile", err, cfg.MetricsFile)
		}
	}
	return nil
}
