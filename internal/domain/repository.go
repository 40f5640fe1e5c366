package domain

import "context"

// FileLoader loads files from filesystem or URL
type FileLoader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileWriter writes files to filesystem
type FileWriter interface {
	Write(path string, data []byte) error
}

// Parser decodes and encodes YAML and JSON documents
type Parser interface {
	Unmarshal(data []byte, v interface{}, format FileFormat) error
	Marshal(v interface{}, format FileFormat) ([]byte, error)
}

// Spec is a loaded OpenAPI document. It is read-only and safe to share
// between concurrent validations.
type Spec interface {
	Title() string
	Version() string
}

// SpecLoader loads OpenAPI documents
type SpecLoader interface {
	Load(ctx context.Context, path string) (Spec, error)
}

// Engine checks a Request against a Spec and reports every violation found.
// A non-nil error means validation could not run at all.
type Engine interface {
	Validate(ctx context.Context, req *Request, spec Spec) ([]*Violation, error)
}
