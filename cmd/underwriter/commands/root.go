package commands

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-underwriter/internal/adapter/openweather"
	"github.com/couchcryptid/storm-underwriter/internal/config"
	"github.com/couchcryptid/storm-underwriter/internal/observability"
	"github.com/spf13/cobra"
)

// newMetrics registers the process metrics. Tests swap it for unregistered metrics.
var newMetrics = observability.NewMetrics

// runtime carries what every subcommand needs once the root has loaded config.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics

	logLevelOverride string
	timeoutOverride  time.Duration
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:   "underwriter",
		Short: "Weather-aware property underwriting",
		Long: `underwriter checks current weather at a property location and decides
whether to APPROVE, DECLINE, or REFER the insurance application.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&rt.logLevelOverride, "log-level", "", "Override LOG_LEVEL (debug|info|warn|error)")
	cmd.PersistentFlags().DurationVar(&rt.timeoutOverride, "timeout", 0, "Override WEATHER_TIMEOUT for the weather request")

	cmd.AddCommand(
		NewAssessCmd(rt),
		NewToolCmd(rt),
		NewServeCmd(rt),
	)

	return cmd
}

func (rt *runtime) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if rt.logLevelOverride != "" {
		cfg.LogLevel = rt.logLevelOverride
	}
	if cmd.Flags().Changed("timeout") {
		cfg.WeatherTimeout = rt.timeoutOverride
	}

	rt.cfg = cfg
	if cmd.Name() == "serve" {
		rt.logger = observability.NewLogger(cfg)
	} else {
		// assess and tool print their result on stdout.
		rt.logger = observability.NewCLILogger(cfg)
	}
	return nil
}

// weatherClient builds the Risk Tool. Metrics must already be set.
func (rt *runtime) weatherClient() *openweather.Client {
	return openweather.NewClient(rt.cfg.WeatherAPIKey, rt.cfg.WeatherBaseURL, rt.cfg.WeatherTimeout, rt.metrics, rt.logger)
}
