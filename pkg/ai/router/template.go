package router

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatTemplate substitutes {key} placeholders in a response template with
// the given values. The keys are model-influenced, so this is deliberately a
// plain string replacement and not a template engine: placeholders without a
// matching value are left literal, and nothing is ever evaluated.
//
// String values are inserted as-is; everything else is rendered as compact
// JSON, so an empty document list formats as "[]".
func FormatTemplate(template string, values map[string]interface{}) string {
	if len(values) == 0 || !strings.Contains(template, "{") {
		return template
	}

	// NewReplacer resolves overlapping patterns by argument order, so the
	// keys are sorted longest-first to keep substitution deterministic when
	// one key prefixes another ({document} before {doc}).
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", renderValue(values[key]))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func renderValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
