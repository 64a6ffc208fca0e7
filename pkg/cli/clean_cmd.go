package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docmill/internal/domain"
	"docmill/internal/service/tabular"
)

func newCleanCmd() *cobra.Command {
	var (
		out            string
		keepDuplicates bool
		rawText        bool
	)

	cmd := &cobra.Command{
		Use:   "clean <file.csv|file.xlsx>",
		Short: "Clean a spreadsheet and print it as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0]) //nolint:gosec // path is caller-controlled
			if err != nil {
				return err
			}

			opts := domain.DefaultCleaningOptions()
			opts.RemoveDuplicates = !keepDuplicates
			opts.CleanText = !rawText

			svc := tabular.NewService(commandLogger(cmd))
			result, err := svc.Clean(cmd.Context(), domain.Upload{
				Filename: filepath.Base(args[0]),
				Data:     data,
			}, opts)
			if err != nil {
				return err
			}

			if out != "" {
				return os.WriteFile(out, []byte(result.Output), 0o644) //nolint:gosec // CSV output is not sensitive
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the cleaned CSV to a file instead of stdout")
	cmd.Flags().BoolVar(&keepDuplicates, "keep-duplicates", false, "Keep duplicate rows")
	cmd.Flags().BoolVar(&rawText, "raw-text", false, "Skip cell text normalization")
	return cmd
}
