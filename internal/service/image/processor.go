package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
)

const (
	defaultMaxWidth     = 1280
	defaultMaxSizeBytes = 1 * 1024 * 1024
	defaultQuality      = 80
	minWidth            = 320
)

// ProcessedImage фото страницы, подготовленное для отправки модели.
type ProcessedImage struct {
	Data      []byte
	Width     int
	Height    int
	SizeBytes int
	MimeType  string
}

// Processor уменьшает фото до maxWidth и перекодирует в JPEG не больше maxSizeByte.
type Processor struct {
	maxWidth    int
	maxSizeByte int
	quality     int
}

func NewProcessor() *Processor {
	return &Processor{
		maxWidth:    defaultMaxWidth,
		maxSizeByte: defaultMaxSizeBytes,
		quality:     defaultQuality,
	}
}

// Process работает в памяти, на диск ничего не пишет.
// Небольшой JPEG, который уже укладывается в лимиты, возвращается как есть.
func (p *Processor) Process(data []byte) (ProcessedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return ProcessedImage{}, fmt.Errorf("invalid image size: %dx%d", cfg.Width, cfg.Height)
	}
	if format == "jpeg" && cfg.Width <= p.maxWidth && len(data) <= p.maxSizeByte {
		return ProcessedImage{Data: data, Width: cfg.Width, Height: cfg.Height, SizeBytes: len(data), MimeType: "image/jpeg"}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, err
	}
	origWidth, origHeight := img.Bounds().Dx(), img.Bounds().Dy()

	quality := min(max(p.quality, defaultQuality), 100)
	resizedWidth := min(origWidth, p.maxWidth)
	resizedHeight := max(1, origHeight*resizedWidth/origWidth)

	var encoded []byte
	for {
		resized := resizeNearest(img, resizedWidth, resizedHeight)
		encoded, err = encodeJPEG(resized, quality)
		if err != nil {
			return ProcessedImage{}, err
		}
		if len(encoded) <= p.maxSizeByte {
			break
		}
		if resizedWidth <= minWidth {
			return ProcessedImage{}, fmt.Errorf("image exceeds max size %d bytes even after downscale", p.maxSizeByte)
		}
		resizedWidth = max(1, int(float64(resizedWidth)*0.9))
		resizedHeight = max(1, origHeight*resizedWidth/origWidth)
	}

	return ProcessedImage{
		Data:      encoded,
		Width:     resizedWidth,
		Height:    resizedHeight,
		SizeBytes: len(encoded),
		MimeType:  "image/jpeg",
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeNearest(src image.Image, width int, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	srcBounds := src.Bounds()
	srcWidth := srcBounds.Dx()
	srcHeight := srcBounds.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		srcY := srcBounds.Min.Y + y*srcHeight/height
		for x := range width {
			srcX := srcBounds.Min.X + x*srcWidth/width
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}
	return dst
}
