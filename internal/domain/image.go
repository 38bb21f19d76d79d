package domain

import "context"

// ProcessedImage is an upload after decoding and resizing.
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ImageProcessor validates and normalizes uploaded images.
type ImageProcessor interface {
	// Process returns ErrValidation when the upload is not a supported image.
	Process(upload *ImageUpload) (*ProcessedImage, error)
}

// ImageStore persists processed event images.
type ImageStore interface {
	// Save stores data under key and returns its public URL.
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}
