package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/model"
)

func suggestCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "suggest <city>",
		Short: "Print activity suggestions for a city",
		Long:  `Run a single recommendation for the given city and print it, without starting the server.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unsupported output format %q (want text or json)", output)
			}

			cfg := config.GetConfig()
			defer log.Sync() //nolint:errcheck
			defer shutdownTelemetry()

			rec, err := buildRecommender(cfg, log.Desugar())
			if err != nil {
				return err
			}

			city := strings.Join(args, " ")
			resp, err := rec.Recommend(cmd.Context(), city)
			if err != nil {
				return err
			}

			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return writeText(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")

	return cmd
}

func writeJSON(w io.Writer, resp *model.ActivityResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func writeText(w io.Writer, resp *model.ActivityResponse) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %.0f°F, %s, humidity %d%%, wind %.0f mph\n",
		resp.City, resp.Weather.Temperature, resp.Weather.Conditions, resp.Weather.Humidity, resp.Weather.WindSpeed)

	if len(resp.Activities) == 0 {
		b.WriteString("\nNo activities suggested.\n")
	}
	for i, a := range resp.Activities {
		fmt.Fprintf(&b, "\n%d. %s [%s]\n   %s\n", i+1, a.Name, a.Category, a.Description)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
