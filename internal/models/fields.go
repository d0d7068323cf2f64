package models

import (
	"encoding/json"
	"fmt"
)

// Fields holds the client-supplied attributes of a document, stored and
// returned as sent. Embedded documents read back from MongoDB decode as
// Fields too.
type Fields map[string]interface{}

// splitObject decodes a JSON object, returning the raw values of the
// server-owned keys separately from every other key.
func splitObject(data []byte, owned ...string) (map[string]json.RawMessage, Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	ownedRaw := make(map[string]json.RawMessage, len(owned))
	fields := make(Fields, len(raw))
	for key, value := range raw {
		if contains(owned, key) {
			ownedRaw[key] = value
			continue
		}
		var v interface{}
		if err := json.Unmarshal(value, &v); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = v
	}
	return ownedRaw, fields, nil
}

// mergeObject encodes fields with the server-owned values on top.
func mergeObject(fields Fields, owned map[string]interface{}) ([]byte, error) {
	out := make(map[string]interface{}, len(fields)+len(owned))
	for key, value := range fields {
		out[key] = value
	}
	for key, value := range owned {
		out[key] = value
	}
	return json.Marshal(out)
}

// optionalString reads a string value, treating a missing or non-string
// value as empty.
func optionalString(raw json.RawMessage) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
