package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/ecoexchange/internal/classify"
	"github.com/vbonduro/ecoexchange/internal/config"
	"github.com/vbonduro/ecoexchange/internal/ledger"
	"github.com/vbonduro/ecoexchange/internal/photostore"
	"github.com/vbonduro/ecoexchange/internal/photostore/local"
	s3store "github.com/vbonduro/ecoexchange/internal/photostore/s3"
	"github.com/vbonduro/ecoexchange/internal/service"
	"github.com/vbonduro/ecoexchange/internal/store"
)

// app is the wired object graph behind every command.
type app struct {
	docs    *store.DocumentStore
	service *service.MarketService
}

func (c *cli) newApp(ctx context.Context) (*app, error) {
	docs := store.NewDocumentStore(c.cfg.DataPath)
	txs := store.NewTransactionStore(c.cfg.TransactionsPath)
	c.logger.Debug("opened stores", "data", docs.Path(), "transactions", txs.Path())
	recorder := ledger.NewRecorder(txs, c.logger)

	photoStg, err := newPhotoStore(ctx, c.cfg, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo store: %w", err)
	}

	svc := service.NewMarketService(
		docs,
		recorder,
		classify.NewKeywordClassifier(),
		photoStg,
		service.VendorDefaults{Name: c.cfg.VendorName, Location: c.cfg.VendorLocation},
		c.logger,
	)
	return &app{docs: docs, service: svc}, nil
}

func newPhotoStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (photostore.PhotoStore, error) {
	switch cfg.PhotoBackend {
	case "s3":
		logger.Info("using s3 photo backend", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
		stg, err := s3store.New(ctx, s3store.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return stg, nil
	case "local", "":
		logger.Debug("using local photo backend", "path", cfg.PhotoPath)
		stg, err := local.NewLocalPhotoStore(cfg.PhotoPath)
		if err != nil {
			return nil, err
		}
		return stg, nil
	default:
		return nil, fmt.Errorf("unknown photo backend %q", cfg.PhotoBackend)
	}
}
