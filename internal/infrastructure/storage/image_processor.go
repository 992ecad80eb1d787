package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"

	"vocalhub-backend/internal/shared/apperror"
)

const (
	DefaultMaxImageSize = 5 * 1024 * 1024
	ThumbnailSize       = 300
)

var ErrInvalidImage = apperror.Validation("INVALID_IMAGE", "file is not a supported image")

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: DefaultMaxImageSize}
}

// ValidateFile checks size and format (jpeg, png, gif) without storing anything
func (p *ImageProcessor) ValidateFile(f *File) error {
	if !f.Present() {
		return ErrInvalidImage
	}
	if f.Size > p.MaxSize {
		return ErrInvalidImage.WithDetails(fmt.Sprintf("image exceeds %dMB", p.MaxSize/(1024*1024)))
	}

	rc, err := f.Open()
	if err != nil {
		return storageErr("open image", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, p.MaxSize+1))
	if err != nil {
		return storageErr("read image", err)
	}
	return p.ValidateImage(data)
}

// ValidateImage checks already buffered image bytes
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return ErrInvalidImage.WithDetails(fmt.Sprintf("image exceeds %dMB", p.MaxSize/(1024*1024)))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ErrInvalidImage.Wrap(err)
	}
	switch format {
	case "jpeg", "png", "gif":
		return nil
	default:
		return ErrInvalidImage.WithDetails(fmt.Sprintf("image format %s not allowed", format))
	}
}

// Thumbnail fits the image into size x size and encodes it as JPEG (quality 90)
func (p *ImageProcessor) Thumbnail(r io.Reader, size int) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, size, size, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
