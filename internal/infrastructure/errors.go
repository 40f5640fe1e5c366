package infrastructure

import (
	"fmt"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
)

// ErrFileNotFound возникает когда спецификация или фикстура не найдена
// Это техническая ошибка инфраструктуры (файловая система, HTTP)
type ErrFileNotFound struct {
	Path string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ErrUnsupportedSpec возникает когда движку передали спецификацию,
// загруженную не через SpecLoader
type ErrUnsupportedSpec struct {
	Type string
}

func (e *ErrUnsupportedSpec) Error() string {
	return fmt.Sprintf("unsupported spec handle: %s", e.Type)
}

// ErrBodyTooLarge возникает когда тело запроса превышает лимит
type ErrBodyTooLarge = domain.ErrBodyTooLarge
