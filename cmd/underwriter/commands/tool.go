package commands

import (
	"fmt"

	"github.com/couchcryptid/storm-underwriter/internal/agent"
	"github.com/spf13/cobra"
)

// NewToolCmd runs the agent-facing Risk Tool with raw JSON arguments, the way
// an agent runtime's executor would, and prints the payload it returns.
func NewToolCmd(rt *runtime) *cobra.Command {
	var decide bool

	cmd := &cobra.Command{
		Use:   "tool <json-args>",
		Short: "Invoke " + agent.RiskToolName + " with JSON arguments",
		Example: `  underwriter tool '{"city_name":"London","country_code":"GB"}'
  underwriter tool --decide '{"city_name":"Atlantis"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.metrics = newMetrics()
			riskTool, err := agent.NewRiskTool(rt.weatherClient())
			if err != nil {
				return fmt.Errorf("build risk tool: %w", err)
			}

			payload, err := riskTool.InvokableRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("invoke %s: %w", agent.RiskToolName, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), payload)

			if decide {
				d, err := agent.DecideFromPayload(payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Decision: %s\nTERMINATE\n", d)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&decide, "decide", false, "Apply the decision policy to the payload")
	return cmd
}
