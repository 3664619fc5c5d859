// Package ledger records completed transactions. Each entry carries a single
// SHA-256 stamp over its own content and timestamp; entries are not chained,
// so editing an earlier entry is not detectable from later ones.
package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

const (
	timestampKey = "timestamp"
	hashKey      = "blockchain_hash"
)

type transactionRepository interface {
	Load(ctx context.Context) (*domain.TransactionDocument, error)
	Save(ctx context.Context, doc *domain.TransactionDocument) error
}

type Recorder struct {
	store  transactionRepository
	now    func() time.Time
	logger *slog.Logger
}

func NewRecorder(store transactionRepository, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, now: time.Now, logger: logger}
}

// Hash returns the hex SHA-256 of data's JSON encoding (keys in insertion
// order, json.dumps layout) immediately followed by timestamp.
func Hash(data domain.Fields, timestamp string) (string, error) {
	encoded, err := hashInput(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}
	sum := sha256.Sum256(append(encoded, timestamp...))
	return hex.EncodeToString(sum[:]), nil
}

// Record stamps data with the current time and its hash, appends it to the
// transactions file and returns the stored entry. The whole file is
// rewritten.
func (r *Recorder) Record(ctx context.Context, data domain.Fields) (domain.Transaction, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	ts := FormatTimestamp(r.now())
	hash, err := Hash(data, ts)
	if err != nil {
		return domain.Transaction{}, err
	}

	entry := domain.Transaction{Fields: data.Clone()}
	if err := entry.SetValue(timestampKey, ts); err != nil {
		return domain.Transaction{}, err
	}
	if err := entry.SetValue(hashKey, hash); err != nil {
		return domain.Transaction{}, err
	}

	doc.Transactions = append(doc.Transactions, entry)
	if err := r.store.Save(ctx, doc); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to save transactions: %w", err)
	}

	r.logger.Info("transaction recorded", "hash", hash, "timestamp", ts, "total", len(doc.Transactions))
	return entry, nil
}
