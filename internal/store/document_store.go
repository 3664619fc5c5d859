package store

import (
	"context"
	"log/slog"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

var (
	materialFields = []string{"id", "title", "category", "price_per_unit", "quantity_available", "description", "vendor_id"}
	vendorFields   = []string{"id", "name", "location"}
)

// DocumentStore reads and writes the primary vendors/materials file. Every
// mutation is a full load, edit and save; nothing guards against another
// process writing between the two.
type DocumentStore struct {
	path string
}

func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

func (s *DocumentStore) Path() string { return s.path }

// Load reads the document. A missing file is initialized with empty arrays
// and persisted before returning.
func (s *DocumentStore) Load(ctx context.Context) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, exists, err := readRoot(s.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		doc := domain.NewDocument()
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		slog.Info("initialized data file", "path", s.path)
		return doc, nil
	}

	vendors, err := decodeArray[domain.Vendor](s.path, root, "vendors", vendorFields...)
	if err != nil {
		return nil, err
	}
	materials, err := decodeArray[domain.Material](s.path, root, "materials", materialFields...)
	if err != nil {
		return nil, err
	}

	return &domain.Document{Vendors: vendors, Materials: materials, Root: root}, nil
}

// Save rewrites the whole file.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	vendors, materials := doc.Vendors, doc.Materials
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	if materials == nil {
		materials = []domain.Material{}
	}

	root := doc.Root.Clone()
	if err := root.SetValue("vendors", vendors); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	if err := root.SetValue("materials", materials); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	return writeRoot(s.path, root)
}
