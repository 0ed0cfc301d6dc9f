// Package render turns response payloads into terminal text.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"

	"apiexplorer/internal/model"
)

// Body pretty-prints JSON values with two-space indentation. Strings that
// themselves hold JSON are re-indented; CSV and other text pass through.
func Body(data any, rt model.ResponseType) string {
	if s, ok := data.(string); ok {
		if rt == model.ResponseCSV {
			return s
		}
		trimmed := strings.TrimSpace(s)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			var v any
			if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
				return indent(v, s)
			}
		}
		return s
	}
	return indent(data, fmt.Sprint(data))
}

func indent(v any, fallback string) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fallback
	}
	return string(b)
}

// Select evaluates a JSONPath expression against a decoded body. A single
// match is returned bare, several as a list.
func Select(data any, expr string) (any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", expr, err)
	}
	got := x.Get(data)
	switch len(got) {
	case 0:
		return nil, fmt.Errorf("jsonpath %q matched nothing", expr)
	case 1:
		return got[0], nil
	}
	return got, nil
}

// MaskKey hides all but the first and last four characters of a key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}

const (
	colorReset   = "\033[0m"
	colorKey     = "\033[36m"
	colorString  = "\033[32m"
	colorNumber  = "\033[33m"
	colorBool    = "\033[35m"
	colorNull    = "\033[90m"
	colorBracket = "\033[37m"
)

// Colorize renders a decoded JSON value with ANSI highlighting. Object keys
// are sorted so the output is stable.
func Colorize(v any) string {
	return colorize(v, 0)
}

func colorize(v any, depth int) string {
	prefix := strings.Repeat("  ", depth)

	switch val := v.(type) {
	case nil:
		return colorNull + "null" + colorReset
	case bool:
		return colorBool + strconv.FormatBool(val) + colorReset
	case float64:
		return colorNumber + strconv.FormatFloat(val, 'f', -1, 64) + colorReset
	case int:
		return colorNumber + strconv.Itoa(val) + colorReset
	case int64:
		return colorNumber + strconv.FormatInt(val, 10) + colorReset
	case string:
		return colorString + quote(val) + colorReset
	case []any:
		if len(val) == 0 {
			return colorBracket + "[]" + colorReset
		}
		var sb strings.Builder
		sb.WriteString(colorBracket + "[" + colorReset + "\n")
		for i, item := range val {
			sb.WriteString(prefix + "  " + colorize(item, depth+1))
			if i < len(val)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + colorBracket + "]" + colorReset)
		return sb.String()
	case map[string]any:
		if len(val) == 0 {
			return colorBracket + "{}" + colorReset
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString(colorBracket + "{" + colorReset + "\n")
		for i, k := range keys {
			sb.WriteString(prefix + "  " + colorKey + quote(k) + colorReset + ": ")
			sb.WriteString(colorize(val[k], depth+1))
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + colorBracket + "}" + colorReset)
		return sb.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}

// StripANSI removes the escape sequences produced by Colorize.
func StripANSI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
