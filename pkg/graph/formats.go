package graph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for documents whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported graph document format")

// FileFormat represents the encodings a graph document can be stored in
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON
	FormatYAML
	FormatTOML
)

// FormatInfo contains metadata about a document format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON graph document",
		Extensions:  []string{".json"},
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML graph document",
		Extensions:  []string{".yaml", ".yml"},
	},
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML graph document",
		Extensions:  []string{".toml"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFileFormat picks the format from the file extension
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// ValidateFile checks that filename exists, is a non-empty regular file
// and has a supported extension.
func ValidateFile(filename string) (FileFormat, error) {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return FormatUnknown, fmt.Errorf("%s is a directory", filename)
	}
	if fileInfo.Size() == 0 {
		return FormatUnknown, fmt.Errorf("file %s is empty", filename)
	}
	return DetectFileFormat(filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
