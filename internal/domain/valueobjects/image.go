package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

type ImageData struct {
	data     []byte
	format   ImageFormat
	mimeType string
}

// NewImageData validates that data decodes as a supported image.
// mimeType may be empty, in which case it is derived from the detected format.
func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	// ヘッダーのContent-Typeは信用しない
	if mimeType == "" || mimeType == "application/octet-stream" || mimeType != format.MimeType() {
		mimeType = format.MimeType()
	}

	return &ImageData{
		data:     data,
		format:   format,
		mimeType: mimeType,
	}, nil
}

func LoadImageData(path string) (*ImageData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return NewImageData(data, "")
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) Extension() string {
	if i.format == JPEG {
		return ".jpg"
	}
	return "." + string(i.format)
}

func (i *ImageData) IsJPEG() bool {
	return i.format == JPEG
}

func (i *ImageData) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(i.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (i *ImageData) ToJPEG() (*ImageData, error) {
	if i.IsJPEG() {
		return i, nil
	}

	img, err := i.Decode()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 90}
	if err := jpeg.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return &ImageData{
		data:     buf.Bytes(),
		format:   JPEG,
		mimeType: JPEG.MimeType(),
	}, nil
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func (f ImageFormat) MimeType() string {
	return "image/" + string(f)
}

func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
