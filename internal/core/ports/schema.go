package ports

import "go.trai.ch/yamldoc/internal/core/domain"

// SchemaValidator validates documents against JSON schemas.
//
//go:generate mockgen -source=schema.go -destination=mocks/mock_schema.go -package=mocks
type SchemaValidator interface {
	// Validate checks doc against the schema file at schemaPath.
	Validate(schemaPath string, doc domain.Value) error
}
