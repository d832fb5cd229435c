package format

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes results as YAML
type YAMLFormatter struct{}

// Format writes v to w as YAML
func (f *YAMLFormatter) Format(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(v)
}

// Extension returns the file extension for this format
func (f *YAMLFormatter) Extension() string {
	return "yaml"
}
