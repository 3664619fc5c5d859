package store

import (
	"context"
	"log/slog"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

// TransactionStore reads and writes the transactions file. Top-level keys
// other than "transactions" are carried through untouched.
type TransactionStore struct {
	path string
}

func NewTransactionStore(path string) *TransactionStore {
	return &TransactionStore{path: path}
}

func (s *TransactionStore) Path() string { return s.path }

func (s *TransactionStore) Load(ctx context.Context) (*domain.TransactionDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, exists, err := readRoot(s.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		doc := &domain.TransactionDocument{Transactions: []domain.Transaction{}}
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		slog.Info("initialized transactions file", "path", s.path)
		return doc, nil
	}

	txs, err := decodeArray[domain.Transaction](s.path, root, "transactions")
	if err != nil {
		return nil, err
	}
	return &domain.TransactionDocument{Transactions: txs, Root: root}, nil
}

func (s *TransactionStore) Save(ctx context.Context, doc *domain.TransactionDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txs := doc.Transactions
	if txs == nil {
		txs = []domain.Transaction{}
	}

	root := doc.Root.Clone()
	if err := root.SetValue("transactions", txs); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	return writeRoot(s.path, root)
}
