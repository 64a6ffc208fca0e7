package domain

import "context"

// QualityProfile is a converter quality preset (Ghostscript PDFSETTINGS value).
type QualityProfile string

const (
	ProfilePrepress QualityProfile = "/prepress" // highest quality, largest output
	ProfileEbook    QualityProfile = "/ebook"    // balanced
	ProfileScreen   QualityProfile = "/screen"   // most aggressive
)

// CompressionJob describes one converter run over scratch-directory paths.
type CompressionJob struct {
	InputPath  string
	OutputPath string
	Profile    QualityProfile
	Resolution string // optional DPI override, digits only; "" when unset
}

// Converter rewrites a PDF at a quality profile.
// Implemented by compress.Ghostscript.
type Converter interface {
	Compress(ctx context.Context, job CompressionJob) error
}

// CompressionReport is the outcome of a compression request. Alert is nil
// unless the output failed to get smaller than the input.
type CompressionReport struct {
	URL            string  `json:"url"`
	OriginalSize   int64   `json:"originalSize"`
	CompressedSize int64   `json:"compressedSize"`
	Alert          *string `json:"alert"`
	GainPercent    float64 `json:"gainPercent"`
}
