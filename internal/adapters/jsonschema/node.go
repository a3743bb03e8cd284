package jsonschema

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yamldoc/internal/core/ports"
)

// NodeID is the unique identifier for the schema validator Graft node.
const NodeID graft.ID = "adapter.jsonschema"

func init() {
	graft.Register(graft.Node[ports.SchemaValidator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SchemaValidator, error) {
			return New(), nil
		},
	})
}
