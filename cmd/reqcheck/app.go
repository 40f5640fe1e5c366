package main

import (
	"github.com/miorlan/openapi-reqcheck/internal/config"
	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"github.com/miorlan/openapi-reqcheck/internal/infrastructure"
	"github.com/miorlan/openapi-reqcheck/internal/usecase"
	"github.com/rs/zerolog"
)

// app хранит зависимости команд
type app struct {
	fileLoader domain.FileLoader
	fileWriter domain.FileWriter
	parser     domain.Parser
	specLoader domain.SpecLoader
	validator  *usecase.ValidateUseCase
	logger     zerolog.Logger
}

// newApp создает экземпляр app с зависимостями
func newApp(cfg *config.Config, logger zerolog.Logger) *app {
	fileLoader := infrastructure.NewFileLoaderWithTimeout(cfg.HTTPTimeout)
	specLoader := infrastructure.NewSpecLoader(fileLoader, infrastructure.SpecLoaderConfig{
		MaxFileSize:   cfg.MaxFileSize,
		IgnoreServers: cfg.IgnoreServers,
	})
	converter := usecase.NewConvertUseCase(usecase.ConvertConfig{MaxBodySize: cfg.MaxBodySize}, logger)
	engine := infrastructure.NewEngine(infrastructure.EngineConfig{})

	return &app{
		fileLoader: fileLoader,
		fileWriter: infrastructure.NewFileWriter(),
		parser:     infrastructure.NewParser(),
		specLoader: specLoader,
		validator:  usecase.NewValidateUseCase(converter, engine, logger),
		logger:     logger,
	}
}
