package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImpactCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show listing totals and the estimated CO2 saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			report, err := a.service.Impact(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total Listings: %d\n", report.Listings)
			fmt.Fprintf(w, "Total Quantity (kg): %g\n", report.Quantity)
			fmt.Fprintf(w, "Estimated CO2 Saved (kg): %.0f\n", report.CO2Saved)
			for _, m := range report.Materials {
				fmt.Fprintf(w, "%s - %g kg available\n", m.Title, m.QuantityAvailable)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
