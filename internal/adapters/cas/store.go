// Package cas stores build info records keyed by output path.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildInfoStore with one JSON file per output below
// the project's .yaml-doc/store directory.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build info recorded for output. It returns nil, nil when
// the output was never built.
func (s *Store) Get(root, output string) (*domain.BuildInfo, error) {
	filename := s.filename(root, output)
	//nolint:gosec // Path is constructed from the project root and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Kind(domain.ErrStoreReadFailed, zerr.With(err, "output", output))
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, domain.Kind(domain.ErrStoreUnmarshalFailed, zerr.With(err, "output", output))
	}

	return &info, nil
}

// Put stores the build info under info.Output.
func (s *Store) Put(root string, info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return domain.Kind(domain.ErrStoreMarshalFailed, err)
	}

	filename := s.filename(root, info.Output)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return domain.Kind(domain.ErrStoreCreateFailed, err)
	}

	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from the project root and a hashed filename
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return domain.Kind(domain.ErrStoreWriteFailed, zerr.With(err, "output", info.Output))
	}
	if err := os.Rename(tmp, filename); err != nil {
		return domain.Kind(domain.ErrStoreWriteFailed, zerr.With(err, "output", info.Output))
	}
	return nil
}

func (s *Store) filename(root, output string) string {
	hash := sha256.Sum256([]byte(filepath.ToSlash(output)))
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, hex.EncodeToString(hash[:])+".json")
}
