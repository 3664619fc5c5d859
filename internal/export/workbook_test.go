package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

func TestWriteWorkbook(t *testing.T) {
	doc := &domain.Document{
		Vendors: []domain.Vendor{{ID: 0, Name: "Green Farms", Location: "Pune"}},
		Materials: []domain.Material{
			{ID: 0, Title: "Coconut husks", Category: domain.CategoryOrganic, PricePerUnit: 4.5, QuantityAvailable: 120, VendorID: 0},
			{ID: 1, Title: "Boxes", Category: domain.CategoryPaper, PricePerUnit: 2, QuantityAvailable: 300, Description: "flat", VendorID: 3},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, doc))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "title", rows[0][1])
	assert.Equal(t, "vendor_location", rows[0][8])

	assert.Equal(t, "Coconut husks", rows[1][1])
	assert.Equal(t, "Organic Waste", rows[1][2])
	assert.Equal(t, "4.5", rows[1][3])
	assert.Equal(t, "Green Farms", rows[1][7])
	assert.Equal(t, "Pune", rows[1][8])

	assert.Equal(t, "Paper & Cardboard", rows[2][2])
	assert.Equal(t, "Unknown", rows[2][7])
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, domain.NewDocument()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
