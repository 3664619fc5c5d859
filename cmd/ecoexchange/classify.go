package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoexchange/internal/classify"
	"github.com/vbonduro/ecoexchange/internal/impact"
)

func newClassifyCmd(c *cli) *cobra.Command {
	var quantity float64

	cmd := &cobra.Command{
		Use:   "classify <filename>",
		Short: "Classify a material from a photo file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := classify.NewKeywordClassifier().Classify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.logger.Debug("classified", "hint", args[0], "label", result.Label)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d%%), estimated CO2 saved for %g kg: %.2f kg\n",
				result.Label, result.Confidence, quantity, impact.CO2Savings(result.Label, quantity))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 1, "quantity in kg")
	return cmd
}
