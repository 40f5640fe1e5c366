package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"github.com/miorlan/openapi-reqcheck/internal/infrastructure"
	"github.com/miorlan/openapi-reqcheck/internal/usecase"
	"github.com/spf13/cobra"
)

// report - содержимое файла отчета (-o)
type report struct {
	Spec    string              `json:"spec" yaml:"spec"`
	Request string              `json:"request" yaml:"request"`
	Valid   bool                `json:"valid" yaml:"valid"`
	Errors  []*domain.Violation `json:"errors" yaml:"errors"`
}

type validateOptions struct {
	specPath    string
	requestPath string
	outputPath  string
	format      string
	raise       bool
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	vo := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [request]",
		Short: "Проверить запрос из YAML/JSON фикстуры по спецификации",
		Example: `  reqcheck validate --spec greet_api.json --request request.yaml
  reqcheck validate -s greet_api.json -o report.json request.yaml
  reqcheck validate -s https://example.com/openapi.yaml --raise request.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vo.requestPath == "" && len(args) > 0 {
				vo.requestPath = args[0]
			}
			if vo.specPath == "" {
				vo.specPath = opts.cfg.Spec
			}
			if !cmd.Flags().Changed("raise") {
				vo.raise = opts.cfg.RaiseOnError
			}
			return runValidate(cmd, opts.app, vo)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&vo.specPath, "spec", "s", "", "Путь или URL OpenAPI спецификации")
	flags.StringVarP(&vo.requestPath, "request", "r", "", "Путь к фикстуре запроса (YAML/JSON)")
	flags.StringVarP(&vo.outputPath, "output", "o", "", "Путь к файлу отчета")
	flags.StringVar(&vo.format, "format", "", "Формат отчета (yaml/json), по умолчанию по расширению")
	flags.BoolVar(&vo.raise, "raise", false, "Остановиться на первой ошибке валидации вместо сбора отчета")

	return cmd
}

func runValidate(cmd *cobra.Command, a *app, vo *validateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if vo.specPath == "" || vo.requestPath == "" {
		return fmt.Errorf("необходимо указать спецификацию и запрос (--spec, --request)")
	}

	format := domain.DetectFormat(vo.outputPath)
	if vo.format != "" {
		f, err := domain.ParseFormat(vo.format)
		if err != nil {
			return err
		}
		format = f
	}

	spec, err := a.specLoader.Load(ctx, vo.specPath)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("spec", vo.specPath).Str("title", spec.Title()).Msg("spec loaded")

	src, err := infrastructure.LoadFixture(ctx, a.fileLoader, a.parser, vo.requestPath)
	if err != nil {
		return err
	}

	result, err := a.validator.Execute(ctx, src, spec, usecase.Config{RaiseOnError: vo.raise})
	if err != nil {
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			return err
		}
		// старый отчет больше не соответствует запросу
		if vo.outputPath != "" {
			if werr := a.fileWriter.Write(vo.outputPath, nil); werr != nil {
				return werr
			}
		}
		fmt.Fprintf(out, "❌ %v\n", vErr)
		return errInvalidRequest
	}

	if vo.outputPath != "" {
		data, err := a.parser.Marshal(&report{
			Spec:    vo.specPath,
			Request: vo.requestPath,
			Valid:   result.Valid(),
			Errors:  result.Errors,
		}, format)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := a.fileWriter.Write(vo.outputPath, data); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		a.logger.Debug().Str("output", vo.outputPath).Msg("report written")
	}

	if !result.Valid() {
		printViolations(out, result.Errors)
		return errInvalidRequest
	}

	fmt.Fprintf(out, "✅ Запрос соответствует спецификации: %s\n", vo.requestPath)
	return nil
}

func printViolations(w io.Writer, violations []*domain.Violation) {
	fmt.Fprintf(w, "❌ Найдено ошибок валидации: %d\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(w, "  - [%s] %s\n", v.Code, v)
	}
}
