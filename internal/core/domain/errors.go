package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is the kind of errors raised for unreadable or malformed YAML.
	ErrParse = zerr.New("failed to parse YAML document")

	// ErrReferenceCycle is the kind of errors raised when a reference chain leads back to a document being resolved.
	ErrReferenceCycle = zerr.New("reference cycle detected")

	// ErrNamespace is the kind of errors raised when a non-mapping document is used as a namespace root.
	ErrNamespace = zerr.New("namespace root must be a mapping")

	// ErrRender is the kind of errors raised by the template engine.
	ErrRender = zerr.New("failed to render template")

	// ErrUnknownReferenceTag is returned when a node carries a tag starting with !import that is not supported.
	ErrUnknownReferenceTag = zerr.New("unknown reference tag")

	// ErrInvalidReference is returned when a reference tag argument cannot be interpreted.
	ErrInvalidReference = zerr.New("invalid reference")

	// ErrAnchorNotFound is returned when an anchored import names an anchor the target document does not define.
	ErrAnchorNotFound = zerr.New("anchor not found")

	// ErrInvalidMergeKey is returned when a merge key value is not a mapping or a list of mappings.
	ErrInvalidMergeKey = zerr.New("merge key value must be a mapping")

	// ErrInvalidPattern is returned when a path pattern or path template cannot be compiled.
	ErrInvalidPattern = zerr.New("invalid path pattern")

	// ErrMissingTemplateField is returned when a path template names a field that was not captured.
	ErrMissingTemplateField = zerr.New("path template field not captured")

	// ErrInvalidVariable is returned when a --var flag is not of the form KEY=VALUE.
	ErrInvalidVariable = zerr.New("invalid variable, expected KEY=VALUE")

	// ErrConfigNotFound is returned when the project file cannot be found.
	ErrConfigNotFound = zerr.New("could not find .yaml-doc.yml")

	// ErrConfigReadFailed is returned when the project file cannot be loaded.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrInvalidConfig is returned when the project file does not describe valid stages.
	ErrInvalidConfig = zerr.New("invalid config")

	// ErrConfigCreateFailed is returned when init cannot create the project file.
	ErrConfigCreateFailed = zerr.New("failed to create config file")

	// ErrUnknownGroup is returned when a selected stage group is not declared.
	ErrUnknownGroup = zerr.New("unknown stage group")

	// ErrInputNotFound is returned when a declared source file does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrDuplicateOutput is returned when two jobs would write the same output file.
	ErrDuplicateOutput = zerr.New("output produced by more than one job")

	// ErrOutputPathOutsideRoot is returned when an output path escapes the project root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside project root")

	// ErrTemplateNotFound is returned when a template source is missing.
	ErrTemplateNotFound = zerr.New("template not found")

	// ErrMissingTemplate is returned when render is called without --template or --inline.
	ErrMissingTemplate = zerr.New("one of --template or --inline is required")

	// ErrSchemaValidation is returned when a source document does not satisfy the stage schema.
	ErrSchemaValidation = zerr.New("document does not match schema")

	// ErrSchemaCompile is returned when a stage schema cannot be compiled.
	ErrSchemaCompile = zerr.New("failed to compile schema")

	// ErrOutputWriteFailed is returned when a rendered document cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output")

	// ErrJobFailed is returned when a build job fails.
	ErrJobFailed = zerr.New("build job failed")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrWalkFailed is returned when walking the project tree fails.
	ErrWalkFailed = zerr.New("failed to walk directory")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)

// Kind tags err with a sentinel kind. errors.Is(result, kind) reports true
// while the zerr chain of err, metadata included, stays reachable through Unwrap.
func Kind(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

// Message returns the kind message so chain printers show it as the headline.
func (e *kindError) Message() string {
	return e.kind.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}
