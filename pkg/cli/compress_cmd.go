package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"docmill/internal/config"
	"docmill/internal/domain"
	"docmill/internal/service/compress"
)

func newCompressCmd() *cobra.Command {
	var (
		mode       string
		resolution string
		out        string
		gsBin      string
	)

	cmd := &cobra.Command{
		Use:   "compress <file.pdf>",
		Short: "Compress a PDF through Ghostscript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			ext := strings.ToLower(filepath.Ext(in))
			if ext != ".pdf" {
				return domain.ErrUnsupportedFormat(ext, ".pdf")
			}
			if resolution != "" {
				if n, err := strconv.Atoi(resolution); err != nil || n <= 0 {
					return domain.ErrValidation("resolution must be a positive whole number, got %q", resolution)
				}
			}
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + "_compressed.pdf"
			}

			inInfo, err := os.Stat(in)
			if err != nil {
				return err
			}

			converter := compress.NewGhostscript(gsBin, commandLogger(cmd))
			job := domain.CompressionJob{
				InputPath:  in,
				OutputPath: out,
				Profile:    compress.ProfileFor(mode),
				Resolution: resolution,
			}
			if err := converter.Compress(cmd.Context(), job); err != nil {
				return err
			}

			outInfo, err := os.Stat(out)
			if err != nil {
				return err
			}

			gain := compress.GainPercent(inInfo.Size(), outInfo.Size())
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (gain %.2f%%)\n",
				out,
				humanize.IBytes(uint64(inInfo.Size())),  //nolint:gosec // sizes are non-negative
				humanize.IBytes(uint64(outInfo.Size())), //nolint:gosec // sizes are non-negative
				gain,
			)
			if outInfo.Size() >= inInfo.Size() {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: the output is not smaller than the original; try --mode moderate or extreme")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", compress.DefaultMode, "Quality mode: lossless, moderate, or extreme")
	cmd.Flags().StringVar(&resolution, "resolution", "", "Downsample images to this DPI")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: <name>_compressed.pdf)")
	cmd.Flags().StringVar(&gsBin, "gs", config.DefaultGhostscriptBin(), "Ghostscript binary")
	return cmd
}
