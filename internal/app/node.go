package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yamldoc/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/adapters/pongo"   //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/adapters/yamlref" //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/yamldoc/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			builder.NodeID,
			yamlref.NodeID,
			pongo.NodeID,
			fs.WalkerNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	b, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	loaders, err := graft.Dep[ports.LoaderFactory](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.TemplateRenderer](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, b, loaders, renderer, walker, w, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
	}, nil
}
