// Package jsonschema validates resolved documents against JSON schemas.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Issue is a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// Validator implements ports.SchemaValidator. Compiled schemas are cached by
// path and shared between callers. A cached schema is recompiled once the
// content of its file changes.
type Validator struct {
	mu      sync.Mutex
	schemas map[string]compiled
}

type compiled struct {
	sum    uint64
	schema *jsonschema.Schema
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{schemas: make(map[string]compiled)}
}

// Validate checks doc against the schema file at schemaPath. Schemas may be
// written in JSON or YAML.
func (v *Validator) Validate(schemaPath string, doc domain.Value) error {
	schema, err := v.compile(schemaPath)
	if err != nil {
		return err
	}

	err = schema.Validate(doc.Interface())
	if err == nil {
		return nil
	}

	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return domain.Kind(domain.ErrSchemaValidation, zerr.With(err, "schema", schemaPath))
	}
	issues := Issues(vErr)
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, issue.String())
	}
	cause := zerr.With(zerr.New(strings.Join(msgs, "; ")), "schema", schemaPath)
	return domain.Kind(domain.ErrSchemaValidation, cause)
}

func (v *Validator) compile(schemaPath string) (*jsonschema.Schema, error) {
	path, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, domain.Kind(domain.ErrSchemaCompile, zerr.With(err, "schema", schemaPath))
	}

	data, err := readSchema(path)
	if err != nil {
		return nil, domain.Kind(domain.ErrSchemaCompile, zerr.With(err, "schema", schemaPath))
	}
	sum := xxhash.Sum64(data)

	v.mu.Lock()
	defer v.mu.Unlock()
	if c, ok := v.schemas[path]; ok && c.sum == sum {
		return c.schema, nil
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
		return nil, domain.Kind(domain.ErrSchemaCompile, zerr.With(err, "schema", schemaPath))
	}
	s, err := compiler.Compile(path)
	if err != nil {
		return nil, domain.Kind(domain.ErrSchemaCompile, zerr.With(err, "schema", schemaPath))
	}
	v.schemas[path] = compiled{sum: sum, schema: s}
	return s, nil
}

// readSchema returns the schema as JSON.
func readSchema(path string) ([]byte, error) {
	//nolint:gosec // schema paths come from the project file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, zerr.Wrap(err, "invalid YAML schema")
		}
		return json.Marshal(domain.ValueOf(raw).Interface())
	default:
		return data, nil
	}
}

// Issues flattens a validation error into its leaf failures.
func Issues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// String formats the issue as a JSON pointer followed by the message.
func (i Issue) String() string {
	location := i.Location
	if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	return location + ": " + i.Message
}
