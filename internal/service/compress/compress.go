// Package compress implements the PDF compression pipeline: persist the
// upload as a scratch artifact, run the converter, account for the size
// change, and record an audit line.
package compress

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"docmill/internal/artifact"
	"docmill/internal/audit"
	"docmill/internal/domain"
)

// DefaultMode is the quality mode used when the caller sends none.
const DefaultMode = "lossless"

// profiles maps request modes to converter quality profiles.
var profiles = map[string]domain.QualityProfile{
	"lossless": domain.ProfilePrepress,
	"moderate": domain.ProfileEbook,
	"extreme":  domain.ProfileScreen,
}

// ProfileFor resolves a requested mode. Unknown modes run the moderate
// profile rather than failing the request.
func ProfileFor(mode string) domain.QualityProfile {
	if p, ok := profiles[mode]; ok {
		return p
	}
	return domain.ProfileEbook
}

// Request carries one compression job from the transport layer.
type Request struct {
	Upload     domain.Upload
	Mode       string // "" means DefaultMode
	Resolution string // optional DPI override
	CallerIP   string // for the audit log
}

// Service runs compression jobs against the artifact store.
type Service struct {
	store     *artifact.Store
	converter domain.Converter
	audit     *audit.Logger
	baseURL   string
	logger    *slog.Logger
}

// NewService creates a compression service publishing download URLs under baseURL.
func NewService(store *artifact.Store, converter domain.Converter, auditLog *audit.Logger, baseURL string, logger *slog.Logger) *Service {
	return &Service{store: store, converter: converter, audit: auditLog, baseURL: baseURL, logger: logger}
}

// Compress persists the upload, converts it, and reports size accounting.
// The input artifact is released on every exit path; only a successful
// output artifact survives for download.
func (s *Service) Compress(ctx context.Context, req Request) (*domain.CompressionReport, error) {
	if req.Upload.Ext() != ".pdf" {
		return nil, domain.ErrUnsupportedFormat(req.Upload.Ext(), ".pdf")
	}
	mode := req.Mode
	if mode == "" {
		mode = DefaultMode
	}
	if req.Resolution != "" {
		if n, err := strconv.Atoi(req.Resolution); err != nil || n <= 0 {
			return nil, domain.ErrValidation("resolution must be a positive whole number, got %q", req.Resolution)
		}
	}

	inputPath, err := s.store.SaveInput(req.Upload.Filename, req.Upload.Data)
	if err != nil {
		s.logger.Error("could not store upload", "file", req.Upload.Filename, "error", err)
		return nil, domain.ErrIO("the uploaded file could not be stored")
	}
	defer func() {
		if err := s.store.Remove(inputPath); err != nil {
			s.logger.Warn("could not release input artifact", "path", inputPath, "error", err)
		}
	}()

	originalSize, err := s.store.Size(inputPath)
	if err != nil {
		s.logger.Error("could not stat input artifact", "path", inputPath, "error", err)
		return nil, domain.ErrIO("the uploaded file could not be read back")
	}

	outputPath, outputName := s.store.NewOutput(req.Upload.Filename)
	job := domain.CompressionJob{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Profile:    ProfileFor(mode),
		Resolution: req.Resolution,
	}
	if err := s.converter.Compress(ctx, job); err != nil {
		if rmErr := s.store.Remove(outputPath); rmErr != nil {
			s.logger.Warn("could not discard partial output", "path", outputPath, "error", rmErr)
		}
		return nil, err
	}

	compressedSize, err := s.store.Size(outputPath)
	if err != nil {
		s.logger.Error("could not stat output artifact", "path", outputPath, "error", err)
		return nil, domain.ErrIO("the compressed file could not be read back")
	}

	gain := GainPercent(originalSize, compressedSize)
	report := &domain.CompressionReport{
		URL:            s.baseURL + "/static/" + outputName,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		Alert:          alertFor(mode, originalSize, compressedSize),
		GainPercent:    gain,
	}

	if err := s.audit.Record(audit.Entry{
		CallerIP:       req.CallerIP,
		Mode:           mode,
		GainPercent:    gain,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
	}); err != nil {
		s.logger.Warn("audit log write failed", "error", err)
	}

	s.logger.Info("pdf compressed",
		"file", req.Upload.Filename,
		"mode", mode,
		"profile", string(job.Profile),
		"original", humanize.IBytes(uint64(originalSize)),   //nolint:gosec // sizes are non-negative
		"compressed", humanize.IBytes(uint64(compressedSize)), //nolint:gosec // sizes are non-negative
		"gain_pct", gain,
	)
	return report, nil
}

// GainPercent is the size reduction as a percentage of the original,
// rounded to two decimals. Negative when the file grew.
func GainPercent(original, compressed int64) float64 {
	if original == 0 {
		return 0
	}
	return math.Round((1-float64(compressed)/float64(original))*10000) / 100
}

// alertFor is non-nil when compression failed to shrink the file. On the
// default mode it points the caller at a stronger profile.
func alertFor(mode string, original, compressed int64) *string {
	if compressed < original {
		return nil
	}
	var msg string
	if mode == DefaultMode {
		msg = `compression did not reduce the file size; try mode "moderate" for a stronger profile`
	} else {
		msg = "compression did not reduce the file size: the output is not smaller than the original"
	}
	return &msg
}
