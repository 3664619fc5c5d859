package catalog

import (
	"errors"
	"fmt"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSort     = errors.New("invalid sort option")
)

// SortOption is the "Sort By" choice offered on the browse page.
type SortOption string

const (
	SortNewest       SortOption = "Newest"
	SortPriceLowHigh SortOption = "Price: Low to High"
	SortPriceHighLow SortOption = "Price: High to Low"
)

var SortOptions = []SortOption{SortNewest, SortPriceLowHigh, SortPriceHighLow}

// Default browse price bounds.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 100
)

type Criteria struct {
	Category domain.Category
	PriceMin float64
	PriceMax float64
	// Sort is validated and carried through, but Filter does not reorder by it.
	// TODO: apply Sort once the intended order for "Newest" is settled (ID or insertion).
	Sort SortOption
}

func DefaultCriteria() Criteria {
	return Criteria{
		Category: domain.CategoryAll,
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		Sort:     SortNewest,
	}
}

// ParseCategory accepts "All", the empty string (meaning "All") or one of the
// stored categories.
func ParseCategory(s string) (domain.Category, error) {
	c := domain.Category(s)
	if s == "" || c == domain.CategoryAll {
		return domain.CategoryAll, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// ParseSort maps the empty string to SortNewest.
func ParseSort(s string) (SortOption, error) {
	if s == "" {
		return SortNewest, nil
	}
	for _, opt := range SortOptions {
		if SortOption(s) == opt {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
}

// Filter keeps materials whose category matches (or Criteria.Category is
// "All") and whose price lies in [PriceMin, PriceMax]. Input order is kept.
func Filter(materials []domain.Material, c Criteria) []domain.Material {
	out := make([]domain.Material, 0, len(materials))
	for _, m := range materials {
		if c.Category != domain.CategoryAll && m.Category != c.Category {
			continue
		}
		if m.PricePerUnit < c.PriceMin || m.PricePerUnit > c.PriceMax {
			continue
		}
		out = append(out, m)
	}
	return out
}
