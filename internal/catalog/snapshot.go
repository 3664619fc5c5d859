package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

// UnknownVendorName is shown for materials whose vendor_id has no vendor row.
const UnknownVendorName = "Unknown"

// LookupVendor scans vendors for id. On a miss it returns a placeholder
// vendor named UnknownVendorName with an empty location, and false.
func LookupVendor(vendors []domain.Vendor, id int) (domain.Vendor, bool) {
	for _, v := range vendors {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vendor{ID: id, Name: UnknownVendorName}, false
}

type documentLoader interface {
	Load(ctx context.Context) (*domain.Document, error)
}

// Snapshot is a caller-owned copy of the document as of the last Load or
// Reload. It is not refreshed behind the caller's back.
type Snapshot struct {
	loader   documentLoader
	doc      *domain.Document
	loadedAt time.Time
}

func NewSnapshot(ctx context.Context, loader documentLoader) (*Snapshot, error) {
	s := &Snapshot{loader: loader}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the snapshot contents with a fresh load. On error the
// previous contents are kept.
func (s *Snapshot) Reload(ctx context.Context) error {
	doc, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	s.doc = doc
	s.loadedAt = time.Now()
	return nil
}

func (s *Snapshot) Materials() []domain.Material { return s.doc.Materials }

func (s *Snapshot) Vendors() []domain.Vendor { return s.doc.Vendors }

func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Vendor resolves a vendor by id, falling back to the placeholder vendor.
func (s *Snapshot) Vendor(id int) domain.Vendor {
	v, _ := LookupVendor(s.doc.Vendors, id)
	return v
}

// Filter applies Filter to the snapshot's materials.
func (s *Snapshot) Filter(c Criteria) []domain.Material {
	return Filter(s.doc.Materials, c)
}
