package usecase

import (
	"context"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"github.com/rs/zerolog"
)

// Config holds configuration for validation execution
type Config struct {
	RaiseOnError bool
}

// ValidateUseCase реализует проверку запроса фреймворка по OpenAPI спецификации
type ValidateUseCase struct {
	converter *ConvertUseCase
	engine    domain.Engine
	logger    zerolog.Logger
}

// NewValidateUseCase создает новый экземпляр ValidateUseCase
func NewValidateUseCase(converter *ConvertUseCase, engine domain.Engine, logger zerolog.Logger) *ValidateUseCase {
	return &ValidateUseCase{
		converter: converter,
		engine:    engine,
		logger:    logger,
	}
}

// Execute выполняет проверку запроса.
// При нарушениях и RaiseOnError возвращается *domain.ValidationError,
// иначе нарушения возвращаются в Result.Errors.
func (uc *ValidateUseCase) Execute(ctx context.Context, src domain.Source, spec domain.Spec, config Config) (*domain.Result, error) {
	req, err := uc.converter.Execute(ctx, src)
	if err != nil {
		return nil, err
	}

	violations, err := uc.engine.Validate(ctx, req, spec)
	if err != nil {
		return nil, err
	}

	if len(violations) == 0 {
		uc.logger.Debug().
			Str("method", req.Method()).
			Str("url", req.URL()).
			Str("spec", spec.Title()).
			Msg("request is valid")
		return &domain.Result{Errors: []*domain.Violation{}}, nil
	}

	uc.logger.Debug().
		Str("method", req.Method()).
		Str("url", req.URL()).
		Str("spec", spec.Title()).
		Int("violations", len(violations)).
		Msg("request is invalid")

	if config.RaiseOnError {
		return nil, &domain.ValidationError{Violations: violations}
	}
	return &domain.Result{Errors: violations}, nil
}
