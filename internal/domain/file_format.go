package domain

import (
	"fmt"
	"path"
	"strings"
)

// FileFormat представляет формат файла
type FileFormat string

const (
	FormatYAML FileFormat = "yaml"
	FormatJSON FileFormat = "json"
)

// DetectFormat определяет формат файла по пути или URL
func DetectFormat(filePath string) FileFormat {
	if i := strings.IndexAny(filePath, "?#"); i >= 0 {
		filePath = filePath[:i]
	}
	switch strings.ToLower(path.Ext(filePath)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML // По умолчанию
	}
}

// ParseFormat разбирает явно указанный формат (флаг --format)
func ParseFormat(s string) (FileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", s)
	}
}
