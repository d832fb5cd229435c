package format

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes results as pretty-printed JSON
type JSONFormatter struct{}

// Format writes v to w as indented JSON
func (f *JSONFormatter) Format(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// Extension returns the file extension for this format
func (f *JSONFormatter) Extension() string {
	return "json"
}
