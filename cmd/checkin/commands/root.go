package commands

import (
	"context"
	"fmt"
	"os"
	"zhuimi-checkin/internal/components/metrics"
	"zhuimi-checkin/internal/components/telemetry"
	"zhuimi-checkin/internal/notify"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	envFile    *string
	debug      *bool
)

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "checkin logs into zhuimi, performs the daily check-in and reports the result.",
	// running without a subcommand performs the check-in
	RunE:          runCheckin,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(os.Stderr, *debug)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "checkin.json5", "The config file, checkin.local.json5 next to it overrides it.")
	envFile = rootCmd.PersistentFlags().String("env-file", ".env", "A dotenv file loaded into the environment if it exists.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Log every request and response.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (Config, error) {
	cfg, err := LoadConfig(*configPath, *envFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// newTelemetry reports to slog, and to rec if it is not nil.
func newTelemetry(rec *metrics.Recorder) telemetry.API {
	if rec == nil {
		return telemetry.SlogAPI{}
	}
	return telemetry.Multi{
		telemetry.SlogAPI{},
		metrics.TelemetryAPI{Recorder: rec},
	}
}

func newNotifier(cfg Config, tel telemetry.API) notify.Notifier {
	return notify.Multi{
		notify.NewTelegram(cfg.TelegramOptions(), tel),
		notify.NewEmail(cfg.SmtpOptions(), tel),
	}
}
