package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/guidant/guidant/utils"
)

// ScreenshotResponse represents the response for a screenshot command
type ScreenshotResponse struct {
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Data     string `json:"data,omitempty"`     // base64 encoded image data
	FilePath string `json:"filePath,omitempty"` // path where file was saved
	Message  string `json:"message,omitempty"`
}

// CaptureOptions control how an in-memory capture is encoded.
type CaptureOptions struct {
	Format  string // "png" or "jpeg"
	Quality int    // 1-100, only used for JPEG
}

// Capture grabs the primary display and encodes it. It backs both the
// CLI screenshot command and the server.
func Capture(opts CaptureOptions) ([]byte, ScreenshotResponse, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "jpeg" {
		return nil, ScreenshotResponse{}, usageError(fmt.Sprintf("invalid format '%s'. Supported formats are 'png' and 'jpeg'", opts.Format))
	}

	img, err := GetController().CaptureMainDisplay()
	if err != nil {
		return nil, ScreenshotResponse{}, &Error{
			Kind:    KindPlatform,
			Message: fmt.Sprintf("Error taking screenshot: %v", err),
			Err:     err,
		}
	}

	data, err := utils.EncodePNG(img)
	if err != nil {
		return nil, ScreenshotResponse{}, &Error{
			Kind:    KindPlatform,
			Message: fmt.Sprintf("Error encoding screenshot: %v", err),
			Err:     err,
		}
	}

	if format == "jpeg" {
		quality := opts.Quality
		if quality < 1 || quality > 100 {
			quality = 90
		}
		data, err = utils.ConvertPngToJpeg(data, quality)
		if err != nil {
			return nil, ScreenshotResponse{}, &Error{
				Kind:    KindPlatform,
				Message: fmt.Sprintf("Error encoding screenshot: %v", err),
				Err:     err,
			}
		}
	}

	bounds := img.Bounds()
	utils.Verbose("Captured %dx%d screenshot, %d bytes of %s", bounds.Dx(), bounds.Dy(), len(data), format)
	return data, ScreenshotResponse{Format: format, Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// ScreenshotCommand captures the primary display and writes it as PNG
// to req.SavePath, replacing any existing file. The parent directory
// must already exist. An empty path is still a path; the write fails.
func ScreenshotCommand(req ScreenshotRequest) (*ScreenshotResponse, error) {
	data, response, err := Capture(CaptureOptions{Format: "png"})
	if err != nil {
		return nil, err
	}

	if err := WriteScreenshot(req.SavePath, data); err != nil {
		return nil, err
	}

	response.FilePath = req.SavePath
	response.Message = fmt.Sprintf("Screenshot saved to %s", req.SavePath)
	return &response, nil
}

// WriteScreenshot writes encoded image bytes straight to path, creating
// or truncating it. A failed write may leave a partial file behind.
func WriteScreenshot(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{
			Kind:    KindIO,
			Message: fmt.Sprintf("Error saving screenshot: %v", err),
			Err:     err,
		}
	}
	return nil
}

// EncodeDataURL formats image bytes the way JSON clients expect them.
func EncodeDataURL(format string, data []byte) string {
	return fmt.Sprintf("data:image/%s;base64,%s", format, base64.StdEncoding.EncodeToString(data))
}
