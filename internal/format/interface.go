package format

import (
	"fmt"
	"io"
)

// Formatter writes a structured result in one machine-readable format
type Formatter interface {
	Format(v any, w io.Writer) error
	Extension() string
}

// NewFormatter creates a formatter for the named format
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "json":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml)", name)
	}
}
