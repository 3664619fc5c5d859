package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoexchange/internal/config"
	"github.com/vbonduro/ecoexchange/internal/domain"
	"github.com/vbonduro/ecoexchange/internal/service"
)

func newSellCmd(c *cli) *cobra.Command {
	var in service.ListingInput
	var category string

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List a material for sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Category = domain.Category(category)

			a, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			listing, err := a.service.CreateListing(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Material listed successfully! id=%d vendor_id=%d vendor=%s\n",
				listing.ID, listing.VendorID, listing.Vendor.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "material name")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryOrganic), "category")
	cmd.Flags().Float64Var(&in.PricePerUnit, "price", 0, "price per kg")
	cmd.Flags().Float64Var(&in.QuantityAvailable, "quantity", 1, "available quantity in kg")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().String("vendor-name", "Demo Vendor", "name recorded for the new vendor")
	cmd.Flags().String("vendor-location", "Mumbai", "location recorded for the new vendor")
	_ = cmd.MarkFlagRequired("title")
	c.bind(cmd, map[string]string{
		"vendor-name":     config.KeyVendorName,
		"vendor-location": config.KeyVendorLocation,
	}, false)
	return cmd
}
