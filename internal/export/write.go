package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Write for formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFor guesses the output format from a file name, defaulting to JSON.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Write encodes v to w as indented JSON or YAML.
func Write(w io.Writer, v any, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "geojson":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
