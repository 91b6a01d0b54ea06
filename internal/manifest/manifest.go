// Package manifest turns the untrusted manifest.json documents published by add-on
// repositories into catalog entries.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/common"
)

// Manifest is one add-on description. Schemes and Include are nil when the
// manifest does not set them.
type Manifest struct {
	Name        string
	Description string
	Main        string
	UserCSS     string
	Preview     string
	Readme      string
	Branch      string
	Schemes     *string
	Include     []string
	Authors     []domain.Author
	Raw         json.RawMessage
}

// Valid reports whether m carries the fields an entry of kind needs.
func (m Manifest) Valid(kind domain.Kind) bool {
	if m.Name == "" || m.Description == "" {
		return false
	}
	switch kind {
	case domain.KindExtension:
		return m.Main != ""
	case domain.KindTheme:
		return m.UserCSS != ""
	default:
		return false
	}
}

// Parse decodes a manifest document that is either one object or an array of
// objects. Array elements that are not objects are skipped.
func Parse(data []byte) ([]Manifest, error) {
	trimmed := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", common.ErrInvalidManifest)
	}

	switch trimmed[0] {
	case '{':
		m, err := parseOne(trimmed)
		if err != nil {
			return nil, err
		}
		return []Manifest{m}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidManifest, err)
		}
		manifests := make([]Manifest, 0, len(items))
		for i, item := range items {
			m, err := parseOne(item)
			if err != nil {
				logger.Log("Manifest: skipping array element %d: %v", i, err)
				continue
			}
			manifests = append(manifests, m)
		}
		return manifests, nil
	default:
		return nil, fmt.Errorf("%w: expected object or array", common.ErrInvalidManifest)
	}
}

func parseOne(data json.RawMessage) (Manifest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Manifest{}, fmt.Errorf("%w: not an object", common.ErrInvalidManifest)
	}

	m := Manifest{
		Name:        stringField(fields, "name"),
		Description: stringField(fields, "description"),
		Main:        stringField(fields, "main"),
		UserCSS:     stringField(fields, "usercss"),
		Preview:     stringField(fields, "preview"),
		Readme:      stringField(fields, "readme"),
		Branch:      stringField(fields, "branch"),
		Authors:     authorsField(fields),
		Raw:         append(json.RawMessage(nil), data...),
	}

	if schemes := stringField(fields, "schemes"); schemes != "" {
		m.Schemes = &schemes
	}

	if raw, ok := fields["include"]; ok {
		var include []string
		if err := json.Unmarshal(raw, &include); err == nil && include != nil {
			m.Include = include
		}
	}

	return m, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func authorsField(fields map[string]json.RawMessage) []domain.Author {
	raw, ok := fields["authors"]
	if !ok {
		return nil
	}
	var authors []domain.Author
	if err := json.Unmarshal(raw, &authors); err != nil {
		return nil
	}
	out := authors[:0]
	for _, a := range authors {
		if a.Name != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
