package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckSpecCmd(opts *rootOptions) *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "check-spec [spec]",
		Short: "Загрузить и проверить OpenAPI спецификацию",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if specPath == "" && len(args) > 0 {
				specPath = args[0]
			}
			if specPath == "" {
				specPath = opts.cfg.Spec
			}
			if specPath == "" {
				return fmt.Errorf("необходимо указать спецификацию (--spec или REQCHECK_SPEC)")
			}

			spec, err := opts.app.specLoader.Load(cmd.Context(), specPath)
			if err != nil {
				return err
			}

			opts.app.logger.Debug().Str("spec", specPath).Msg("spec loaded")
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Спецификация валидна: %s %s\n", spec.Title(), spec.Version())
			return nil
		},
	}

	cmd.Flags().StringVarP(&specPath, "spec", "s", "", "Путь или URL OpenAPI спецификации")
	return cmd
}
