// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/yamldoc/internal/adapters/cas"
	_ "go.trai.ch/yamldoc/internal/adapters/config"
	_ "go.trai.ch/yamldoc/internal/adapters/fs"
	_ "go.trai.ch/yamldoc/internal/adapters/jsonschema"
	_ "go.trai.ch/yamldoc/internal/adapters/linear"
	_ "go.trai.ch/yamldoc/internal/adapters/logger"
	_ "go.trai.ch/yamldoc/internal/adapters/pongo"
	_ "go.trai.ch/yamldoc/internal/adapters/watcher"
	_ "go.trai.ch/yamldoc/internal/adapters/yamlref"
	// Register app and engine nodes.
	_ "go.trai.ch/yamldoc/internal/app"
	_ "go.trai.ch/yamldoc/internal/engine/builder"
)
