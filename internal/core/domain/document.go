package domain

import "time"

// Document is a fully resolved YAML file.
type Document struct {
	// Path is the absolute path of the file.
	Path string
	// Root is the resolved content of the file.
	Root Value
	// Anchors maps every anchor declared in the file to its resolved node.
	Anchors map[string]Value
}

// Anchor returns the resolved node carrying the given anchor.
func (d *Document) Anchor(name string) (Value, bool) {
	v, ok := d.Anchors[name]
	return v, ok
}

// BuildInfo records how an output was last rendered.
type BuildInfo struct {
	Output    string    `json:"output,omitzero"`
	Source    string    `json:"source,omitzero"`
	Template  string    `json:"template,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
