package domain

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var (
	fieldNameRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	templateFieldRe = regexp.MustCompile(`\{([^{}]*)\}`)
)

// IsPattern reports whether s contains wildcards or named captures.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?{")
}

// PathPattern matches slash-separated relative paths. Besides the plain
// wildcards `*`, `**` and `?`, it supports named wildcards: `{name:*}`
// captures within one path segment and `{name:**}` across segments.
type PathPattern struct {
	raw    string
	re     *regexp.Regexp
	fields []string
}

// CompilePattern parses a path pattern.
func CompilePattern(pattern string) (*PathPattern, error) {
	var (
		sb     strings.Builder
		fields []string
		seen   = make(map[string]bool)
	)
	sb.WriteString("^")
	p := path.Clean(filepath.ToSlash(pattern))
	for i := 0; i < len(p); {
		switch c := p[i]; {
		case c == '{':
			end := strings.IndexByte(p[i:], '}')
			if end < 0 {
				return nil, invalidPattern(pattern, "unterminated named wildcard")
			}
			name, glob, ok := strings.Cut(p[i+1:i+end], ":")
			if !ok || !fieldNameRe.MatchString(name) || (glob != "*" && glob != "**") {
				return nil, invalidPattern(pattern, "named wildcard must look like {name:*} or {name:**}")
			}
			if seen[name] {
				return nil, invalidPattern(pattern, "duplicate field "+name)
			}
			seen[name] = true
			fields = append(fields, name)
			if glob == "**" {
				sb.WriteString("(?P<" + name + ">.*)")
			} else {
				sb.WriteString("(?P<" + name + ">[^/]*)")
			}
			i += end + 1
		case strings.HasPrefix(p[i:], "**/"):
			sb.WriteString("(?:.*/)?")
			i += 3
		case strings.HasPrefix(p[i:], "**"):
			sb.WriteString(".*")
			i += 2
		case c == '*':
			sb.WriteString("[^/]*")
			i++
		case c == '?':
			sb.WriteString("[^/]")
			i++
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, invalidPattern(pattern, err.Error())
	}
	return &PathPattern{raw: pattern, re: re, fields: fields}, nil
}

func invalidPattern(pattern, reason string) error {
	err := zerr.With(ErrInvalidPattern, "pattern", pattern)
	return zerr.With(err, "reason", reason)
}

// String returns the pattern source.
func (p *PathPattern) String() string { return p.raw }

// Fields returns the capture names in declaration order.
func (p *PathPattern) Fields() []string { return p.fields }

// Base returns the longest leading directory free of wildcards. Walking from
// there visits every candidate path.
func (p *PathPattern) Base() string {
	parts := strings.Split(path.Clean(filepath.ToSlash(p.raw)), "/")
	var static []string
	for _, part := range parts[:len(parts)-1] {
		if IsPattern(part) {
			break
		}
		static = append(static, part)
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}

// Match matches a slash-separated relative path and returns the captured fields.
func (p *PathPattern) Match(rel string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(filepath.ToSlash(rel))
	if m == nil {
		return nil, false
	}
	params := make(map[string]string, len(p.fields))
	for i, name := range p.re.SubexpNames() {
		if name != "" {
			params[name] = m[i]
		}
	}
	return params, true
}

// PathTemplate is an output path with `{name}` placeholders.
type PathTemplate struct {
	raw    string
	fields []string
}

// IsPathTemplate reports whether s has placeholders.
func IsPathTemplate(s string) bool {
	return strings.Contains(s, "{")
}

// ParsePathTemplate parses an output path template.
func ParsePathTemplate(s string) (*PathTemplate, error) {
	var fields []string
	for _, m := range templateFieldRe.FindAllStringSubmatch(s, -1) {
		if !fieldNameRe.MatchString(m[1]) {
			return nil, invalidPattern(s, "invalid placeholder {"+m[1]+"}")
		}
		fields = append(fields, m[1])
	}
	if strings.Count(s, "{") != len(fields) || strings.Count(s, "}") != len(fields) {
		return nil, invalidPattern(s, "unbalanced braces")
	}
	return &PathTemplate{raw: s, fields: fields}, nil
}

// String returns the template source.
func (t *PathTemplate) String() string { return t.raw }

// Fields returns the placeholder names in order of appearance.
func (t *PathTemplate) Fields() []string { return t.fields }

// Expand substitutes every placeholder with its captured value.
func (t *PathTemplate) Expand(params map[string]string) (string, error) {
	var missing string
	out := templateFieldRe.ReplaceAllStringFunc(t.raw, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		err := zerr.With(ErrMissingTemplateField, "template", t.raw)
		return "", zerr.With(err, "field", missing)
	}
	return out, nil
}
