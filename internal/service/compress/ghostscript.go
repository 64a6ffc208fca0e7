package compress

import (
	"context"
	"log/slog"

	execute "github.com/alexellis/go-execute/v2"

	"docmill/internal/domain"
)

// taskRunner executes an ExecTask; tests substitute a fake.
type taskRunner func(ctx context.Context, task execute.ExecTask) (execute.ExecResult, error)

// Ghostscript rewrites PDFs by shelling out to gs. Converter stderr stays in
// the logs; callers only ever see a generic ConverterError.
type Ghostscript struct {
	bin    string
	logger *slog.Logger
	run    taskRunner
}

// NewGhostscript creates a converter around the given gs binary.
func NewGhostscript(bin string, logger *slog.Logger) *Ghostscript {
	return &Ghostscript{
		bin:    bin,
		logger: logger,
		run: func(ctx context.Context, task execute.ExecTask) (execute.ExecResult, error) {
			return task.Execute(ctx)
		},
	}
}

// Compress runs one gs invocation for the job.
func (g *Ghostscript) Compress(ctx context.Context, job domain.CompressionJob) error {
	task := execute.ExecTask{
		Command: g.bin,
		Args:    g.buildArgs(job),
	}
	g.logger.Debug("running converter", "command", g.bin, "args", task.Args)

	res, err := g.run(ctx, task)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		g.logger.Error("converter could not be started", "command", g.bin, "error", err)
		return domain.ErrConverter("the PDF converter is unavailable")
	}
	if res.ExitCode != 0 {
		g.logger.Error("converter exited non-zero",
			"command", g.bin,
			"exit_code", res.ExitCode,
			"stderr", res.Stderr,
		)
		return domain.ErrConverter("the PDF converter failed on this file")
	}
	return nil
}

func (g *Ghostscript) buildArgs(job domain.CompressionJob) []string {
	args := []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=" + string(job.Profile),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + job.OutputPath,
	}
	// The DPI override must precede the input file or gs ignores it.
	if job.Resolution != "" {
		args = append(args, "-r"+job.Resolution)
	}
	return append(args, job.InputPath)
}

// Compile-time check that Ghostscript implements domain.Converter.
var _ domain.Converter = (*Ghostscript)(nil)
