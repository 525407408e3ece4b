package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultDescriptor []byte

//go:embed embedded/settings.toml
var defaultSettings []byte

// DefaultDescriptorContent returns the embedded descriptor defaults
func DefaultDescriptorContent() string {
	return string(defaultDescriptor)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
