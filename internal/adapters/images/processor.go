package images

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/disintegration/imaging"

	"devevent/internal/domain"
)

// Defaults for event cover images.
const (
	DefaultMaxBytes  = 5 << 20
	DefaultMaxWidth  = 1200
	DefaultMaxHeight = 800
	jpegQuality      = 85

	// maxSourcePixels bounds the decoded size of an upload. A small file can
	// declare huge dimensions, so the header is checked before decoding.
	maxSourcePixels = 40_000_000
)

type format struct {
	imaging     imaging.Format
	contentType string
	ext         string
}

// Uploads are re-encoded into the format they were sniffed as; gif keeps its
// first frame only.
var acceptedFormats = map[string]format{
	"image/jpeg": {imaging.JPEG, "image/jpeg", "jpg"},
	"image/png":  {imaging.PNG, "image/png", "png"},
	"image/gif":  {imaging.GIF, "image/gif", "gif"},
}

type processor struct {
	maxBytes  int64
	maxWidth  int
	maxHeight int
	maxPixels int
}

// NewProcessor returns an ImageProcessor that rejects uploads over maxBytes
// and fits images within maxWidth x maxHeight.
func NewProcessor(maxBytes int64, maxWidth, maxHeight int) domain.ImageProcessor {
	return &processor{maxBytes: maxBytes, maxWidth: maxWidth, maxHeight: maxHeight, maxPixels: maxSourcePixels}
}

func (p *processor) Process(upload *domain.ImageUpload) (*domain.ProcessedImage, error) {
	if upload == nil || upload.Content == nil {
		return nil, domain.NewValidationError([]string{"image is required"})
	}
	if upload.Size > p.maxBytes {
		return nil, tooLarge(p.maxBytes)
	}
	raw, err := io.ReadAll(io.LimitReader(upload.Content, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(raw)) > p.maxBytes {
		return nil, tooLarge(p.maxBytes)
	}
	if len(raw) == 0 {
		return nil, domain.NewValidationError([]string{"image is required"})
	}

	f, ok := acceptedFormats[http.DetectContentType(raw)]
	if !ok {
		return nil, domain.NewValidationError([]string{"image must be a JPEG, PNG or GIF file"})
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewValidationError([]string{"image could not be decoded"})
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > p.maxPixels/cfg.Height {
		return nil, domain.NewValidationError([]string{
			fmt.Sprintf("image dimensions %dx%d exceed %d megapixels", cfg.Width, cfg.Height, p.maxPixels/1_000_000),
		})
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.NewValidationError([]string{"image could not be decoded"})
	}
	img = p.fit(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f.imaging, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &domain.ProcessedImage{Data: buf.Bytes(), ContentType: f.contentType, Ext: f.ext}, nil
}

func (p *processor) fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= p.maxWidth && b.Dy() <= p.maxHeight {
		return img
	}
	return imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)
}

func tooLarge(max int64) error {
	return domain.NewValidationError([]string{fmt.Sprintf("image must be %dMB or smaller", max>>20)})
}
