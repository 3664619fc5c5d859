package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/ecoexchange/internal/catalog"
	"github.com/vbonduro/ecoexchange/internal/domain"
)

// SheetName is the worksheet holding the listings.
const SheetName = "Materials"

var header = []interface{}{
	"id",
	"title",
	"category",
	"price_per_unit",
	"quantity_available",
	"description",
	"vendor_id",
	"vendor_name",
	"vendor_location",
}

// WriteWorkbook writes one row per material, in file order, with the vendor
// resolved the same way the browse page does.
func WriteWorkbook(w io.Writer, doc *domain.Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, m := range doc.Materials {
		vendor, _ := catalog.LookupVendor(doc.Vendors, m.VendorID)
		row := []interface{}{
			m.ID,
			m.Title,
			string(m.Category),
			m.PricePerUnit,
			m.QuantityAvailable,
			m.Description,
			m.VendorID,
			vendor.Name,
			vendor.Location,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
