package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/vbonduro/ecoexchange/internal/catalog"
	"github.com/vbonduro/ecoexchange/internal/classify"
	"github.com/vbonduro/ecoexchange/internal/domain"
	"github.com/vbonduro/ecoexchange/internal/export"
	"github.com/vbonduro/ecoexchange/internal/impact"
	"github.com/vbonduro/ecoexchange/internal/photostore"
)

var ErrInvalidListing = errors.New("invalid listing")

// documentRepository is the subset of store.DocumentStore that MarketService requires.
type documentRepository interface {
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}

// transactionRecorder is the subset of ledger.Recorder that MarketService requires.
type transactionRecorder interface {
	Record(ctx context.Context, data domain.Fields) (domain.Transaction, error)
}

// VendorDefaults is the identity minted for every new listing's vendor.
type VendorDefaults struct {
	Name     string
	Location string
}

type MarketService struct {
	docs       documentRepository
	recorder   transactionRecorder
	classifier classify.Classifier
	photoStg   photostore.PhotoStore
	vendor     VendorDefaults
	logger     *slog.Logger

	// mu serializes load-modify-save cycles within this process.
	mu sync.Mutex
}

func NewMarketService(
	docs documentRepository,
	recorder transactionRecorder,
	classifier classify.Classifier,
	photoStg photostore.PhotoStore,
	vendor VendorDefaults,
	logger *slog.Logger,
) *MarketService {
	return &MarketService{
		docs:       docs,
		recorder:   recorder,
		classifier: classifier,
		photoStg:   photoStg,
		vendor:     vendor,
		logger:     logger,
	}
}

// Snapshot loads a fresh caller-owned catalog snapshot.
func (s *MarketService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return catalog.NewSnapshot(ctx, s.docs)
}

// Listing is a material joined with its vendor for display.
type Listing struct {
	domain.Material
	Vendor domain.Vendor `json:"vendor"`
}

func toListings(snap *catalog.Snapshot, materials []domain.Material) []Listing {
	out := make([]Listing, 0, len(materials))
	for _, m := range materials {
		out = append(out, Listing{Material: m, Vendor: snap.Vendor(m.VendorID)})
	}
	return out
}

// Featured returns the first n listings in file order. A negative n yields
// none.
func (s *MarketService) Featured(ctx context.Context, n int) ([]Listing, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	materials := snap.Materials()
	n = max(n, 0)
	if len(materials) > n {
		materials = materials[:n]
	}
	return toListings(snap, materials), nil
}

func (s *MarketService) Browse(ctx context.Context, c catalog.Criteria) ([]Listing, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toListings(snap, snap.Filter(c)), nil
}

type ListingInput struct {
	Title             string          `json:"title"`
	Category          domain.Category `json:"category"`
	PricePerUnit      float64         `json:"price_per_unit"`
	QuantityAvailable float64         `json:"quantity_available"`
	Description       string          `json:"description"`
}

func (in ListingInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidListing)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidListing, in.Category)
	}
	if in.PricePerUnit < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidListing)
	}
	if in.QuantityAvailable <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidListing)
	}
	return nil
}

// CreateListing mints a new vendor and a material pointing at it, each with
// the smallest free ID in its own space, and saves the whole document.
func (s *MarketService) CreateListing(ctx context.Context, in ListingInput) (*Listing, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	materialID := catalog.NextID(catalog.MaterialIDs(doc.Materials))
	vendorID := catalog.NextID(catalog.VendorIDs(doc.Vendors))

	material := domain.Material{
		ID:                materialID,
		Title:             in.Title,
		Category:          in.Category,
		PricePerUnit:      in.PricePerUnit,
		QuantityAvailable: in.QuantityAvailable,
		Description:       in.Description,
		VendorID:          vendorID,
	}
	vendor := domain.Vendor{ID: vendorID, Name: s.vendor.Name, Location: s.vendor.Location}

	doc.Materials = append(doc.Materials, material)
	doc.Vendors = append(doc.Vendors, vendor)
	if err := s.docs.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	s.logger.Info("material listed", "material_id", materialID, "vendor_id", vendorID, "category", in.Category)
	return &Listing{Material: material, Vendor: vendor}, nil
}

// ImpactReport backs the impact page: the blanket totals plus every material.
type ImpactReport struct {
	impact.Summary
	Materials []domain.Material `json:"materials"`
}

func (s *MarketService) Impact(ctx context.Context) (*ImpactReport, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &ImpactReport{Summary: impact.Summarize(snap.Materials()), Materials: snap.Materials()}, nil
}

type Verification struct {
	classify.Result
	Quantity   float64 `json:"quantity"`
	CO2Savings float64 `json:"co2_savings"`
	StorageKey string  `json:"storage_key"`
}

// VerifyMaterial stores the submitted photo, classifies it from its file
// name and estimates the per-type CO2 savings for quantity kg.
func (s *MarketService) VerifyMaterial(ctx context.Context, filename string, imageData []byte, mimeType string, quantity float64) (*Verification, error) {
	s.logger.Info("verify material started", "filename", filename, "mime_type", mimeType, "bytes", len(imageData))

	storageKey, err := s.photoStg.Save(ctx, "material", mimeType, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	s.logger.Debug("photo saved", "storage_key", storageKey)

	result, err := s.classifier.Classify(ctx, filename)
	if err != nil {
		if derr := s.photoStg.Delete(ctx, storageKey); derr != nil {
			s.logger.Error("failed to remove photo after classify error", "storage_key", storageKey, "error", derr)
		}
		return nil, fmt.Errorf("failed to classify material: %w", err)
	}

	v := &Verification{
		Result:     *result,
		Quantity:   quantity,
		CO2Savings: impact.CO2Savings(result.Label, quantity),
		StorageKey: storageKey,
	}
	s.logger.Info("verify material complete", "label", v.Label, "confidence", v.Confidence, "co2_savings", v.CO2Savings)
	return v, nil
}

func (s *MarketService) GetPhoto(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	return s.photoStg.Get(ctx, storageKey)
}

func (s *MarketService) RecordTransaction(ctx context.Context, data domain.Fields) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Record(ctx, data)
}

// ExportListings writes every material with its vendor as an xlsx workbook.
func (s *MarketService) ExportListings(ctx context.Context, w io.Writer) error {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	return export.WriteWorkbook(w, doc)
}
