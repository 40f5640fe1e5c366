package usecase

import (
	"context"
	"maps"
	"strings"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"github.com/rs/zerolog"
)

// ConvertConfig holds configuration for request conversion
type ConvertConfig struct {
	MaxBodySize int64
}

// ConvertUseCase преобразует запрос фреймворка в нейтральный domain.Request
type ConvertUseCase struct {
	config ConvertConfig
	logger zerolog.Logger
}

// NewConvertUseCase создает новый экземпляр ConvertUseCase
func NewConvertUseCase(config ConvertConfig, logger zerolog.Logger) *ConvertUseCase {
	return &ConvertUseCase{
		config: config,
		logger: logger,
	}
}

// Execute читает тело запроса ровно один раз и собирает domain.Request.
// Ошибки чтения тела не обрабатываются, а возвращаются вызывающему
// обернутыми в *domain.ConversionError.
func (uc *ConvertUseCase) Execute(ctx context.Context, src domain.Source) (*domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConversionError{Err: err}
	}

	body, err := uc.readBody(ctx, src)
	if err != nil {
		return nil, &domain.ConversionError{Err: err}
	}

	if uc.config.MaxBodySize > 0 && int64(len(body)) > uc.config.MaxBodySize {
		return nil, &domain.ConversionError{Err: &domain.ErrBodyTooLarge{Limit: uc.config.MaxBodySize}}
	}

	u := src.URL()
	header := src.Header()

	// многозначные заголовки склеиваются через запятую (RFC 9110),
	// а Cookie через "; " (RFC 6265), иначе куки не разобрать
	headers := make(map[string]string, len(header))
	for name, values := range header {
		sep := ", "
		if strings.EqualFold(name, "Cookie") {
			sep = "; "
		}
		headers[name] = strings.Join(values, sep)
	}

	req := domain.NewRequest(domain.RequestParams{
		Method:      strings.ToUpper(src.Method()),
		URL:         u.String(),
		Headers:     headers,
		PathParams:  maps.Clone(src.PathParams()),
		QueryParams: u.Query(),
		Body:        body,
		ContentType: header.Get("Content-Type"),
	})

	uc.logger.Debug().
		Str("method", req.Method()).
		Str("url", req.URL()).
		Int("body_size", len(body)).
		Msg("request converted")

	return req, nil
}

// readBody передает лимит источнику, если тот умеет прерывать чтение
func (uc *ConvertUseCase) readBody(ctx context.Context, src domain.Source) ([]byte, error) {
	if limited, ok := src.(domain.LimitedSource); ok && uc.config.MaxBodySize > 0 {
		return limited.LimitedBody(ctx, uc.config.MaxBodySize)
	}
	return src.Body(ctx)
}
