package commands

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/storm-underwriter/internal/domain"
	"github.com/couchcryptid/storm-underwriter/internal/underwriting"
	"github.com/spf13/cobra"
)

// NewAssessCmd underwrites a single property location and prints the decision.
func NewAssessCmd(rt *runtime) *cobra.Command {
	var (
		city    string
		country string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Underwrite one property location",
		Example: `  underwriter assess --city London --country GB
  underwriter assess --city Miami --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := domain.NewLocationQuery(city, country)
			if err != nil {
				return err
			}

			rt.metrics = newMetrics()
			u := underwriting.New(rt.weatherClient(), nil, rt.logger, rt.metrics)

			app, err := u.Process(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(app)
			}

			fmt.Fprintf(out, "Application %s for %s\n", app.ID, query)
			if app.Report != nil {
				fmt.Fprintf(out, "  Weather: %s, wind %s mph, %s F\n",
					app.Report.WeatherDescription, formatMeasure(app.Report.WindSpeedMph), formatMeasure(app.Report.TemperatureF))
			}
			if app.ToolError != nil {
				fmt.Fprintf(out, "  Weather lookup failed (%s): %s\n", app.ToolError.Kind, app.ToolError.Message)
			}
			fmt.Fprintf(out, "Decision: %s\n", app.Decision)
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City of the property (required)")
	cmd.Flags().StringVar(&country, "country", domain.DefaultCountryCode, "Two-letter country code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full application as JSON")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}

func formatMeasure(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}
