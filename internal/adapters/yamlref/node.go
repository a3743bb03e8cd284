package yamlref

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yamldoc/internal/adapters/fs"
	"go.trai.ch/yamldoc/internal/core/ports"
)

// NodeID is the unique identifier for the loader factory Graft node.
const NodeID graft.ID = "adapter.yamlref"

func init() {
	graft.Register(graft.Node[ports.LoaderFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.LoaderFactory, error) {
			resolver, err := graft.Dep[ports.PatternResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(resolver), nil
		},
	})
}
