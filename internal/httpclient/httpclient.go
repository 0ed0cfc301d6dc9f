package httpclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"apiexplorer/internal/model"
)

// RequestSpec is a fully resolved request. Body is nil for GET and non-nil
// (possibly empty) for every other method.
type RequestSpec struct {
	Method model.Method
	URL    string
	Body   map[string]any
}

// MissingParamError is returned by BuildStrict when a path parameter is empty.
type MissingParamError struct {
	Endpoint string
	Name     string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Endpoint, e.Name)
}

// Build resolves an endpoint against the environment. Placeholders without a
// value are replaced with the empty string.
func Build(ep model.Endpoint, env model.EnvironmentSettings, vals map[string]string) RequestSpec {
	spec, _ := build(ep, env, vals, false)
	return spec
}

// BuildStrict is Build but refuses to substitute an empty path parameter.
func BuildStrict(ep model.Endpoint, env model.EnvironmentSettings, vals map[string]string) (RequestSpec, error) {
	return build(ep, env, vals, true)
}

func build(ep model.Endpoint, env model.EnvironmentSettings, vals map[string]string, strict bool) (RequestSpec, error) {
	path, consumed, err := substitutePath(ep, template(ep, env), vals, strict)
	if err != nil {
		return RequestSpec{}, err
	}

	spec := RequestSpec{Method: ep.Method}
	target := join(env.BaseAPIURL, path)

	if ep.Method == model.MethodGet {
		var q []string
		for _, p := range ep.Params {
			v := vals[p.Name]
			if consumed[p.Name] || v == "" {
				continue
			}
			q = append(q, url.QueryEscape(p.Name)+"="+url.QueryEscape(v))
		}
		if len(q) > 0 {
			target += "?" + strings.Join(q, "&")
		}
	} else {
		spec.Body = buildBody(ep, vals, consumed)
	}

	spec.URL = CollapseSlashes(target)
	return spec, nil
}

// PreviewURL renders the URL a user would copy: set placeholders are
// substituted, unset ones stay as {name}, and no query string is added.
func PreviewURL(ep model.Endpoint, env model.EnvironmentSettings, vals map[string]string) string {
	path := template(ep, env)
	for _, p := range ep.Params {
		if v := vals[p.Name]; v != "" {
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(v))
		}
	}
	return CollapseSlashes(join(env.BaseAPIURL, path))
}

func template(ep model.Endpoint, env model.EnvironmentSettings) string {
	t := ep.URL
	if env.UseRealAPI && ep.RealURL != "" {
		t = ep.RealURL
	}
	if !strings.HasPrefix(t, "/") && !strings.HasPrefix(t, "http") {
		t = "/" + t
	}
	return t
}

func substitutePath(ep model.Endpoint, tpl string, vals map[string]string, strict bool) (string, map[string]bool, error) {
	out := tpl
	consumed := map[string]bool{}
	for _, p := range ep.Params {
		ph := "{" + p.Name + "}"
		if !strings.Contains(out, ph) {
			continue
		}
		v := vals[p.Name]
		if strict && strings.TrimSpace(v) == "" {
			return "", nil, &MissingParamError{Endpoint: ep.Value, Name: p.Name}
		}
		out = strings.ReplaceAll(out, ph, url.PathEscape(v))
		consumed[p.Name] = true
	}
	return out, consumed, nil
}

func buildBody(ep model.Endpoint, vals map[string]string, consumed map[string]bool) map[string]any {
	obj := map[string]any{}
	for _, p := range ep.Params {
		raw := vals[p.Name]
		if consumed[p.Name] || raw == "" {
			continue
		}
		switch p.Type {
		case model.TypeArray:
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err == nil {
				obj[p.Name] = v
			} else {
				obj[p.Name] = raw
			}
		case model.TypeNumber:
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				obj[p.Name] = n
			} else {
				obj[p.Name] = raw
			}
		default:
			obj[p.Name] = raw
		}
	}
	return obj
}

// join prefixes path with base unless path is already absolute or already
// lives under base.
func join(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	trimmed := strings.TrimRight(base, "/")
	if trimmed != "" && strings.HasPrefix(path, trimmed) {
		rest := path[len(trimmed):]
		if rest == "" || rest[0] == '/' || rest[0] == '?' {
			return path
		}
	}
	return trimmed + "/" + strings.TrimLeft(path, "/")
}

// CollapseSlashes folds runs of '/' into one, leaving a leading "scheme://"
// intact.
func CollapseSlashes(s string) string {
	prefix, rest := "", s
	if i := strings.Index(s, "://"); i > 0 && isScheme(s[:i]) {
		prefix, rest = s[:i+3], s[i+3:]
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(prefix)
	prev := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '/' {
			if prev {
				continue
			}
			prev = true
		} else {
			prev = false
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
