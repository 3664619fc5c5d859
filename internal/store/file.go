package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

// StorageError reports a failure to read, decode or write a data file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// indent matches the 4-space layout of the existing data files.
const indent = "    "

// readRoot reads path and decodes its top-level object. exists is false when
// the file is absent.
func readRoot(path string) (root domain.Fields, exists bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, true, &StorageError{Op: "decode", Path: path, Err: err}
	}
	return root, true, nil
}

// writeRoot rewrites the whole file. The write is not atomic.
func writeRoot(path string, root domain.Fields) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(root); err != nil {
		return &StorageError{Op: "encode", Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// isNull reports whether raw is the JSON literal null.
func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeArray decodes the array stored under key into a slice of T, checking
// that every element carries the required keys with non-null values.
func decodeArray[T any](path string, root domain.Fields, key string, required ...string) ([]T, error) {
	raw, ok := root.Get(key)
	if !ok {
		return nil, &StorageError{Op: "decode", Path: path, Err: fmt.Errorf("missing top-level key %q", key)}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, &StorageError{Op: "decode", Path: path, Err: fmt.Errorf("%q is not an array", key)}
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		var obj domain.Fields
		if err := json.Unmarshal(elem, &obj); err != nil {
			return nil, &StorageError{Op: "decode", Path: path, Err: fmt.Errorf("%s[%d]: %w", key, i, err)}
		}
		for _, k := range required {
			if v, ok := obj.Get(k); !ok || isNull(v) {
				return nil, &StorageError{Op: "decode", Path: path, Err: fmt.Errorf("%s[%d]: missing field %q", key, i, k)}
			}
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			return nil, &StorageError{Op: "decode", Path: path, Err: fmt.Errorf("%s[%d]: %w", key, i, err)}
		}
		out = append(out, v)
	}
	return out, nil
}
