package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/miorlan/openapi-reqcheck/internal/config"
	"github.com/miorlan/openapi-reqcheck/internal/logger"
	"github.com/spf13/cobra"
)

//go:embed version.txt
var version string

func init() {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "0.1.0" // fallback
	}
}

// errInvalidRequest означает, что запрос не прошел валидацию (код выхода 1)
var errInvalidRequest = errors.New("request does not match the specification")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errInvalidRequest) {
			fmt.Fprintf(os.Stderr, "❌ Ошибка: %v\n", err)
		}
		os.Exit(1)
	}
}

// rootOptions - общие для всех команд флаги и зависимости
type rootOptions struct {
	cfg     *config.Config
	app     *app
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "reqcheck",
		Short:         "reqcheck - проверка HTTP запросов по OpenAPI спецификации",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.LogLevel = "debug"
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat, stderr)
			if err != nil {
				return err
			}

			opts.cfg = cfg
			opts.app = newApp(cfg, log)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Подробный вывод")

	root.AddCommand(
		newValidateCmd(opts),
		newCheckSpecCmd(opts),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Args:  cobra.NoArgs,
		// конфигурация для вывода версии не нужна
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reqcheck version %s\n", version)
		},
	}
}
