package manifest

import (
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var (
	codecOnce sync.Once
	codecAPI  jsoniter.API
)

// codec returns the process-wide manifest codec, built once. SortMapKeys
// keeps the encoded form deterministic: identical inputs always produce
// identical artifact payloads, which matters for change detection in the
// host build system.
func codec() jsoniter.API {
	codecOnce.Do(func() {
		codecAPI = jsoniter.Config{
			IndentionStep: 2,
			SortMapKeys:   true,
			EscapeHTML:    true,
		}.Froze()
	})
	return codecAPI
}

// Encode serializes m to its UTF-8 artifact payload. A zero Version encodes
// as the current FormatVersion.
func Encode(m *FactoryManifest) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest cannot be nil")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	enc := *m
	if enc.Version == 0 {
		enc.Version = FormatVersion
	}

	data, err := codec().Marshal(&enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest %s: %w", m.Name, err)
	}
	return data, nil
}

// Decode parses an artifact payload. Payloads written by a newer tool
// version are rejected rather than misread.
func Decode(data []byte) (*FactoryManifest, error) {
	var m FactoryManifest
	if err := codec().Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m.Version == 0 {
		m.Version = 1
	}
	if m.Version > FormatVersion {
		return nil, fmt.Errorf("manifest version %d is newer than supported version %d", m.Version, FormatVersion)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
