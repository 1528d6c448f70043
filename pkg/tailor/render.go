package tailor

import (
	"context"
	"encoding/json"

	"github.com/kriti1799/Resume-Builder/pkg/tex"
)

// render runs Stage 2: structure-only template fill. Text values are
// escaped for LaTeX before the fill so syntactically significant
// characters in profile content cannot break compilation. On failure the
// bare template skeleton is returned as a last resort.
func (p *Pipeline) render(ctx context.Context, enhancedJSON []byte, template string) (texSource string) {
	escaped := escapeJSONStrings(enhancedJSON)

	texSource, err := p.rewriter.RenderTemplate(ctx, escaped, template)
	if err != nil || texSource == "" {
		texSource = template
	}
	return texSource
}

// escapeJSONStrings escapes every string value in a JSON document for
// LaTeX insertion, preserving structure and key order-insensitive content.
// Unparsable input is passed through untouched.
func escapeJSONStrings(raw []byte) (escaped []byte) {
	escaped = raw

	var doc interface{}
	err := json.Unmarshal(raw, &doc)
	if err != nil {
		return escaped
	}

	out, err := json.Marshal(escapeValue(doc))
	if err != nil {
		return escaped
	}

	escaped = out
	return escaped
}

// escapeValue walks a decoded JSON tree escaping string leaves.
func escapeValue(v interface{}) (out interface{}) {
	switch value := v.(type) {
	case string:
		out = tex.Escape(value)
	case []interface{}:
		for i, item := range value {
			value[i] = escapeValue(item)
		}
		out = value
	case map[string]interface{}:
		for key, item := range value {
			value[key] = escapeValue(item)
		}
		out = value
	default:
		out = v
	}
	return out
}
