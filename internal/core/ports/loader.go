package ports

import "go.trai.ch/yamldoc/internal/core/domain"

// DocumentLoader loads YAML documents and resolves their references.
// A loader owns one reference cache and is not safe for concurrent use.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type DocumentLoader interface {
	// Load returns the resolved document at path. Loading the same path twice
	// returns the same *domain.Document.
	Load(path string) (*domain.Document, error)

	// Files returns the absolute paths of every document loaded so far, sorted.
	Files() []string
}

// LoaderFactory creates loaders with a fresh reference cache.
type LoaderFactory interface {
	// NewLoader returns a loader resolving relative references against baseDir.
	NewLoader(baseDir string) DocumentLoader
}
