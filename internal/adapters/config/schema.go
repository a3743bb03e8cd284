package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// StageDTO represents one stage of a stage group in .yaml-doc.yml.
type StageDTO struct {
	Name     string     `yaml:"name" json:"name"`
	Template string     `yaml:"template" json:"template"`
	Sources  StringList `yaml:"sources" json:"sources"`
	Outputs  StringList `yaml:"outputs" json:"outputs"`
	Schema   string     `yaml:"schema" json:"schema"`
}

// Validate checks the shape of the stage. File existence and path pairing
// are checked by the loader.
func (s StageDTO) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Template, validation.Required),
		validation.Field(&s.Sources, validation.Required, validation.Each(validation.Required)),
		validation.Field(&s.Outputs,
			validation.Required,
			validation.Each(validation.Required),
			validation.Length(len(s.Sources), len(s.Sources)).
				Error("must have as many entries as sources"),
		),
	)
}

// StringList accepts either a single string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return zerr.With(zerr.New("expected a string or a list of strings"), "line", node.Line)
	}
}
