package impact

import "github.com/vbonduro/ecoexchange/internal/domain"

// EstimateFactor is the blanket kg of CO2 saved per kg of listed material.
// It is an illustrative figure, not a calibrated emissions factor.
const EstimateFactor = 2.5

// DefaultCO2Factor applies to material types missing from the per-type table.
const DefaultCO2Factor = 0.5

// co2Factors are kg CO2 saved per kg, keyed by classifier label.
var co2Factors = map[string]float64{
	"Coconut Shell": 0.82,
	"Glass Bottle":  0.62,
	"Cardboard":     1.12,
}

func TotalListings(materials []domain.Material) int {
	return len(materials)
}

func TotalQuantity(materials []domain.Material) float64 {
	var total float64
	for _, m := range materials {
		total += m.QuantityAvailable
	}
	return total
}

// EstimatedImpact is the blanket CO2 estimate for a total quantity.
func EstimatedImpact(totalQuantity float64) float64 {
	return totalQuantity * EstimateFactor
}

func CO2Factor(materialType string) float64 {
	if f, ok := co2Factors[materialType]; ok {
		return f
	}
	return DefaultCO2Factor
}

// CO2Savings is the per-type estimate for quantity kg of materialType. It is
// not interchangeable with EstimatedImpact.
func CO2Savings(materialType string, quantity float64) float64 {
	return quantity * CO2Factor(materialType)
}

type Summary struct {
	Listings int     `json:"total_listings"`
	Quantity float64 `json:"total_quantity"`
	CO2Saved float64 `json:"estimated_co2_saved"`
}

func Summarize(materials []domain.Material) Summary {
	qty := TotalQuantity(materials)
	return Summary{
		Listings: TotalListings(materials),
		Quantity: qty,
		CO2Saved: EstimatedImpact(qty),
	}
}
