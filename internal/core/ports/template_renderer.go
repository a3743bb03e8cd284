package ports

import "go.trai.ch/yamldoc/internal/core/domain"

// TemplateRenderer renders templates against a namespace.
//
// root is the project directory: template paths, includes and extends resolve
// against it.
//
//go:generate mockgen -source=template_renderer.go -destination=mocks/mock_template_renderer.go -package=mocks
type TemplateRenderer interface {
	// RenderFile renders the template file at path.
	RenderFile(root, path string, ns *domain.Mapping) (string, error)

	// RenderString renders a literal template.
	RenderString(root, source string, ns *domain.Mapping) (string, error)
}
