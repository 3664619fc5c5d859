package catalog

import "github.com/vbonduro/ecoexchange/internal/domain"

// NextID returns the smallest non-negative integer not in existing. IDs of
// removed records are handed out again, and material and vendor IDs are
// allocated independently.
func NextID(existing []int) int {
	taken := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}
	id := 0
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

func MaterialIDs(materials []domain.Material) []int {
	ids := make([]int, len(materials))
	for i, m := range materials {
		ids[i] = m.ID
	}
	return ids
}

func VendorIDs(vendors []domain.Vendor) []int {
	ids := make([]int, len(vendors))
	for i, v := range vendors {
		ids[i] = v.ID
	}
	return ids
}
