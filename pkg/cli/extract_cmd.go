package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docmill/internal/config"
	"docmill/internal/domain"
	"docmill/internal/service/extract"
)

func newExtractCmd() *cobra.Command {
	var chars int

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract the text of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0]) //nolint:gosec // path is caller-controlled
			if err != nil {
				return err
			}

			svc := extract.NewService(chars, extract.NewFitzReader(), commandLogger(cmd))
			result, err := svc.Extract(cmd.Context(), domain.Upload{
				Filename: filepath.Base(args[0]),
				Data:     data,
			})
			if err != nil {
				return err
			}

			if result.Partial {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: output truncated to %d characters\n", result.CharCount)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Text)
			return nil
		},
	}

	cmd.Flags().IntVar(&chars, "chars", config.DefaultExtractCharCap, "Maximum characters to print")
	return cmd
}
