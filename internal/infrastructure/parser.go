package infrastructure

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// Parser реализует парсинг YAML и JSON (фикстуры запросов и отчеты)
type Parser struct{}

// NewParser создает новый парсер
func NewParser() domain.Parser {
	return &Parser{}
}

// Unmarshal парсит данные в зависимости от формата
func (p *Parser) Unmarshal(data []byte, v interface{}, format domain.FileFormat) error {
	switch format {
	case domain.FormatJSON:
		return json.Unmarshal(data, v)
	case domain.FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return p.unmarshalByContent(data, v)
	}
}

// Marshal сериализует данные в зависимости от формата
func (p *Parser) Marshal(v interface{}, format domain.FileFormat) ([]byte, error) {
	if format == domain.FormatJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalByContent пытается определить формат по содержимому
func (p *Parser) unmarshalByContent(data []byte, v interface{}) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed != "" && (trimmed[0] == '{' || trimmed[0] == '[') {
		if err := json.Unmarshal(data, v); err == nil {
			return nil
		}
	}
	return yaml.Unmarshal(data, v)
}
