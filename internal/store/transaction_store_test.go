package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/ecoexchange/internal/domain"
)

const seedTransactions = `{
    "users": [{"name": "demo"}],
    "transactions": [
        {"material": "Cullet", "quantity": 5, "timestamp": "2024-05-01T10:00:00.000000", "blockchain_hash": "aa"}
    ],
    "settings": {"currency": "INR"}
}`

func TestTransactionStoreLoad(t *testing.T) {
	s := NewTransactionStore(writeFile(t, "demo_data.json", seedTransactions))

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Transactions, 1)
	assert.Equal(t, "aa", doc.Transactions[0].BlockchainHash())
	assert.Equal(t, "material", doc.Transactions[0].Fields[0].Key)
}

func TestTransactionStorePreservesOtherKeysInOrder(t *testing.T) {
	path := writeFile(t, "demo_data.json", seedTransactions)
	s := NewTransactionStore(path)
	ctx := context.Background()

	doc, err := s.Load(ctx)
	require.NoError(t, err)

	tx := domain.Transaction{}
	require.NoError(t, tx.SetValue("material", "Boxes"))
	doc.Transactions = append(doc.Transactions, tx)
	require.NoError(t, s.Save(ctx, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	users := strings.Index(content, `"users"`)
	txs := strings.Index(content, `"transactions"`)
	settings := strings.Index(content, `"settings"`)
	assert.True(t, users < txs && txs < settings, "top-level key order changed:\n%s", content)
	assert.Contains(t, content, `"currency": "INR"`)

	reloaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, reloaded.Transactions, 2)
}

func TestTransactionStoreCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo_data.json")
	s := NewTransactionStore(path)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Transactions)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions": []}`, string(data))
}

func TestTransactionStoreMalformed(t *testing.T) {
	for _, content := range []string{`not json`, `{"users": []}`, `{"transactions": [1, 2]}`} {
		s := NewTransactionStore(writeFile(t, "demo_data.json", content))

		_, err := s.Load(context.Background())
		var storageErr *StorageError
		assert.True(t, errors.As(err, &storageErr), "content %q: want *StorageError, got %v", content, err)
	}
}
