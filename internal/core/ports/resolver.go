package ports

// Match is a file found by a path pattern, with the fields it captured.
type Match struct {
	// Path is relative to the root the pattern was resolved against, slash separated.
	Path   string
	Params map[string]string
}

// PatternResolver expands path patterns to files.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PatternResolver interface {
	// Resolve returns the files below root matching pattern, sorted by path.
	Resolve(root, pattern string) ([]Match, error)
}
