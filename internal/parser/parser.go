// Package parser splits content files into front-matter metadata and a markdown body.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/ignatij/folio/internal/apperr"
)

// Result holds the output of parsing a content file.
type Result struct {
	Meta map[string]any
	Body string
}

// headerStarts are the opening delimiter lines of the line-delimited
// front-matter formats: YAML, TOML and JSON.
var headerStarts = []string{"---", "---yaml", "+++", "---toml", ";;;", "---json"}

// Parse extracts the front-matter header and the markdown body from raw file
// bytes. Recognised headers are YAML ("---" or "---yaml"), TOML ("+++" or
// "---toml"), JSON (";;;" or "---json") and a leading JSON object. A document
// without a header yields an empty Meta and the whole input as Body. A
// delimited header that fails to decode is reported as apperr.ErrMalformed.
func Parse(data []byte) (*Result, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("{")) {
		if r, ok := parseJSONObject(trimmed); ok {
			return r, nil
		}
	}
	if !hasHeader(trimmed) {
		return &Result{Meta: map[string]any{}, Body: string(data)}, nil
	}

	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parser: %w: %v", apperr.ErrMalformed, err)
	}

	return &Result{Meta: normalizeMeta(raw), Body: strings.TrimLeft(string(body), "\r\n")}, nil
}

// hasHeader reports whether the first line of data is a front-matter delimiter.
func hasHeader(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	return slices.Contains(headerStarts, string(bytes.TrimSpace(line)))
}

// parseJSONObject reads a JSON object at the start of data and treats the
// rest as body. Text that merely starts with "{" but is not a JSON object is
// left to the caller as plain body.
func parseJSONObject(data []byte) (*Result, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	body := strings.TrimLeft(string(data[dec.InputOffset():]), " \t")
	return &Result{Meta: normalizeMeta(raw), Body: strings.TrimLeft(body, "\r\n")}, true
}

func normalizeMeta(raw map[string]any) map[string]any {
	meta := make(map[string]any, len(raw))
	for k, v := range raw {
		meta[k] = normalize(v)
	}
	return meta
}

// Serialize writes meta as a YAML header followed by body. Parse(Serialize(m, b))
// returns m for scalar and list values.
func Serialize(meta map[string]any, body string) ([]byte, error) {
	var buf bytes.Buffer
	if len(meta) > 0 {
		header, err := yaml.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("parser: encode front-matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(header)
		buf.WriteString("---\n")
	}
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// normalize converts decoder-specific shapes into plain Go values.
func normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// String returns meta[key] as a string. Non-string scalars are formatted;
// missing keys and nil values return "".
func String(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Strings returns meta[key] as a list, preserving author order. A single
// scalar becomes a one-element list; blank entries are dropped.
func Strings(meta map[string]any, key string) []string {
	v, ok := meta[key]
	if !ok || v == nil {
		return nil
	}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	default:
		items = []any{t}
	}
	var out []string
	for _, item := range items {
		if item == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Bool returns meta[key] as a bool, accepting "true"/"false" strings.
// Anything else yields def.
func Bool(meta map[string]any, key string, def bool) bool {
	switch t := meta[key].(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return def
}
