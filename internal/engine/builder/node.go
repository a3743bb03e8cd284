package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yamldoc/internal/adapters/cas"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/yamldoc/internal/adapters/fs"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/yamldoc/internal/adapters/jsonschema" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/yamldoc/internal/adapters/linear"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/yamldoc/internal/adapters/pongo"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/yamldoc/internal/adapters/yamlref"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/yamldoc/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			yamlref.NodeID,
			pongo.NodeID,
			jsonschema.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.ResolverNodeID,
			linear.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			loaders, err := graft.Dep[ports.LoaderFactory](ctx)
			if err != nil {
				return nil, err
			}

			renderer, err := graft.Dep[ports.TemplateRenderer](ctx)
			if err != nil {
				return nil, err
			}

			schemas, err := graft.Dep[ports.SchemaValidator](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.PatternResolver](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			return New(loaders, renderer, schemas, store, hasher, resolver, reporter), nil
		},
	})
}
