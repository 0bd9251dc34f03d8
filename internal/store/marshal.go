package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalList converts a descriptor list to JSON TEXT for storage.
// HTML escaping is disabled so IPA and punctuation are stored verbatim.
func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("marshal list: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalList parses JSON TEXT to a descriptor list. Empty lists come
// back as nil.
func unmarshalList(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	return items, nil
}
