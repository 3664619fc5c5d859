package impact

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vbonduro/ecoexchange/internal/domain"
)

const collectTimeout = 5 * time.Second

type documentLoader interface {
	Load(ctx context.Context) (*domain.Document, error)
}

// Collector reports marketplace totals from a fresh document load on every
// scrape.
type Collector struct {
	loader   documentLoader
	listings *prometheus.Desc
	quantity *prometheus.Desc
	co2      *prometheus.Desc
}

func NewCollector(loader documentLoader) *Collector {
	return &Collector{
		loader: loader,
		listings: prometheus.NewDesc(
			prometheus.BuildFQName("ecoexchange", "materials", "listings"),
			"Number of listed materials.",
			nil, nil,
		),
		quantity: prometheus.NewDesc(
			prometheus.BuildFQName("ecoexchange", "materials", "quantity_kg"),
			"Total quantity available across all listings.",
			nil, nil,
		),
		co2: prometheus.NewDesc(
			prometheus.BuildFQName("ecoexchange", "impact", "co2_saved_kg"),
			"Estimated CO2 saved by the listed quantity.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.listings
	ch <- c.quantity
	ch <- c.co2
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	doc, err := c.loader.Load(ctx)
	if err != nil {
		slog.Error("failed to load document for metrics", "error", err)
		ch <- prometheus.NewInvalidMetric(c.listings, err)
		ch <- prometheus.NewInvalidMetric(c.quantity, err)
		ch <- prometheus.NewInvalidMetric(c.co2, err)
		return
	}

	s := Summarize(doc.Materials)
	ch <- prometheus.MustNewConstMetric(c.listings, prometheus.GaugeValue, float64(s.Listings))
	ch <- prometheus.MustNewConstMetric(c.quantity, prometheus.GaugeValue, s.Quantity)
	ch <- prometheus.MustNewConstMetric(c.co2, prometheus.GaugeValue, s.CO2Saved)
}
