package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoexchange/internal/catalog"
	"github.com/vbonduro/ecoexchange/internal/service"
)

func newBrowseCmd(c *cli) *cobra.Command {
	var (
		category string
		sort     string
		priceMin float64
		priceMax float64
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List materials filtered by category and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := catalog.Criteria{PriceMin: priceMin, PriceMax: priceMax}
			var err error
			if criteria.Category, err = catalog.ParseCategory(category); err != nil {
				return err
			}
			if criteria.Sort, err = catalog.ParseSort(sort); err != nil {
				return err
			}

			a, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			listings, err := a.service.Browse(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), listings)
			}
			printListings(cmd.OutOrStdout(), listings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "All", "category filter")
	cmd.Flags().Float64Var(&priceMin, "min", catalog.DefaultPriceMin, "minimum price per kg")
	cmd.Flags().Float64Var(&priceMax, "max", catalog.DefaultPriceMax, "maximum price per kg")
	cmd.Flags().StringVar(&sort, "sort", string(catalog.SortNewest), "sort option (accepted, not yet applied)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func printListings(w io.Writer, listings []service.Listing) {
	fmt.Fprintf(w, "Showing %d materials\n", len(listings))
	for _, l := range listings {
		fmt.Fprintf(w, "#%d %s [%s] ₹%.2f/kg, %g kg available, vendor: %s",
			l.ID, l.Title, l.Category, l.PricePerUnit, l.QuantityAvailable, l.Vendor.Name)
		if l.Vendor.Location != "" {
			fmt.Fprintf(w, " (%s)", l.Vendor.Location)
		}
		fmt.Fprintln(w)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
