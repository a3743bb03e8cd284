package ports

import "go.trai.ch/yamldoc/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads .yaml-doc.yml from the project directory and returns the validated stages.
	Load(projectPath string) (*domain.Project, error)

	// Init creates an empty project file. It reports false if the file already existed.
	Init(projectPath string) (bool, error)
}
