package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/miorlan/openapi-reqcheck/internal/domain"
)

// Spec - загруженный OpenAPI документ вместе с роутером операций.
// После загрузки не изменяется и может использоваться конкурентно.
type Spec struct {
	doc      *openapi3.T
	router   routers.Router
	location string
}

func (s *Spec) Title() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Title
}

func (s *Spec) Version() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Version
}

// Location возвращает путь или URL, откуда загружен документ
func (s *Spec) Location() string {
	return s.location
}

// Document возвращает разобранный документ kin-openapi
func (s *Spec) Document() *openapi3.T {
	return s.doc
}

// SpecLoaderConfig настраивает загрузку спецификаций
type SpecLoaderConfig struct {
	MaxFileSize int64
	// IgnoreServers отключает сопоставление запроса с servers документа,
	// роутер сопоставляет только путь и метод
	IgnoreServers bool
}

// SpecLoader загружает и проверяет OpenAPI спецификации
type SpecLoader struct {
	fileLoader domain.FileLoader
	config     SpecLoaderConfig
}

// NewSpecLoader создает новый SpecLoader
func NewSpecLoader(fileLoader domain.FileLoader, config SpecLoaderConfig) *SpecLoader {
	return &SpecLoader{
		fileLoader: fileLoader,
		config:     config,
	}
}

// Load загружает спецификацию с диска или по HTTP
func (l *SpecLoader) Load(ctx context.Context, path string) (domain.Spec, error) {
	data, err := l.fileLoader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec from %s: %w", path, err)
	}

	if l.config.MaxFileSize > 0 && int64(len(data)) > l.config.MaxFileSize {
		return nil, fmt.Errorf("spec size %d exceeds maximum allowed size %d", len(data), l.config.MaxFileSize)
	}

	location, err := specLocation(path)
	if err != nil {
		return nil, err
	}

	return NewSpecFromData(ctx, data, location, l.config.IgnoreServers)
}

// NewSpecFromData разбирает и проверяет документ. location используется
// для разрешения относительных внешних $ref и может быть nil.
func NewSpecFromData(ctx context.Context, data []byte, location *url.URL, ignoreServers bool) (*Spec, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = ctx

	var (
		doc *openapi3.T
		err error
	)
	if location != nil {
		doc, err = loader.LoadFromDataWithPath(data, location)
	} else {
		doc, err = loader.LoadFromData(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse spec: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI specification: %w", err)
	}

	if ignoreServers {
		doc.Servers = nil
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	s := &Spec{doc: doc, router: router}
	if location != nil {
		s.location = location.String()
	}
	return s, nil
}

// specLocation определяет базовый адрес для разрешения ссылок
func specLocation(path string) (*url.URL, error) {
	if isRemote(path) {
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("invalid spec URL: %w", err)
		}
		return u, nil
	}

	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}
	return &url.URL{Path: filepath.ToSlash(abs)}, nil
}
