package storage

import (
	"encoding/base64"
	"net/url"

	json "github.com/goccy/go-json"
)

// The settings codec is obfuscation, not security: JSON marshal, URI-escape,
// base64. Anyone with code access can reverse it. It only keeps casual eyes
// off values in the database file, and must never be documented or tested
// as a confidentiality guarantee.

func encodeValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	escaped := url.QueryEscape(string(b))
	return base64.StdEncoding.EncodeToString([]byte(escaped)), nil
}

// decodeValue reverses encodeValue, returning the JSON bytes. ok is false
// when the stored value does not round-trip through the codec, which is the
// case for rows written before the codec existed. Callers fall back to the
// raw stored value then.
func decodeValue(s string) ([]byte, bool) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	unescaped, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil, false
	}
	if !json.Valid([]byte(unescaped)) {
		return nil, false
	}
	return []byte(unescaped), true
}
