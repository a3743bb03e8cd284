package ports

// Hasher defines the interface for computing input hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash hashes the content of files, in order, followed by extra.
	ComputeInputHash(files []string, extra ...string) (string, error)
}
