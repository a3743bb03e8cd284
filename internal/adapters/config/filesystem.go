package config

import (
	"io/fs"
	"os"

	"go.trai.ch/yamldoc/internal/core/domain"
)

// FileSystem abstracts the filesystem operations of the loader for testability.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// WriteFile creates or truncates the file at path.
	WriteFile(path string, data []byte) error
}

// OSFS implements FileSystem using the standard library.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WriteFile writes data to path with the project file permissions.
func (o *OSFS) WriteFile(path string, data []byte) error {
	// #nosec G306 -- project files are meant to be shared
	return os.WriteFile(path, data, domain.FilePerm)
}
