package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/crusader2000/sunpy/pkg/errors"
)

// Format selects how the resolved file list is serialized
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from config or flags
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput,
		"unknown output format %q (want text, json or yaml)", s)
}

// fileList is the serialized shape for structured formats
type fileList struct {
	Files []string `json:"files" yaml:"files"`
}

// WriteFiles emits the resolved file list in the given format. Text is
// one path per line, the form an external archiver consumes verbatim.
func WriteFiles(w io.Writer, files []string, format Format) error {
	switch format {
	case FormatText:
		for _, f := range files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fileList{Files: files})

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(fileList{Files: files})
	}

	return errors.Newf(errors.ErrInvalidInput, "unknown output format %q", string(format))
}
