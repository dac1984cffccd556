package commands

import (
	"bytes"
	"errors"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guidant/guidant/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenshotCommand_WritesPNG(t *testing.T) {
	useFake(t, newFakeController(64, 48))
	path := filepath.Join(t.TempDir(), "out.png")

	resp, err := ScreenshotCommand(ScreenshotRequest{SavePath: path})
	require.NoError(t, err)
	assert.Equal(t, "Screenshot saved to "+path, resp.Message)
	assert.Equal(t, path, resp.FilePath)
	assert.Equal(t, 64, resp.Width)
	assert.Equal(t, 48, resp.Height)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestScreenshotCommand_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 1<<20), 0o644))

	useFake(t, newFakeController(8, 8))
	_, err := ScreenshotCommand(ScreenshotRequest{SavePath: path})
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = ScreenshotCommand(ScreenshotRequest{SavePath: path})
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Less(t, len(second), 1<<20)
	_, err = png.Decode(bytes.NewReader(second))
	assert.NoError(t, err)
}

func TestScreenshotCommand_MissingParentDirectory(t *testing.T) {
	useFake(t, newFakeController(8, 8))
	path := filepath.Join(t.TempDir(), "missing", "out.png")

	_, err := ScreenshotCommand(ScreenshotRequest{SavePath: path})
	require.Error(t, err)
	assert.Equal(t, ExitIO, ExitCode(err))
	assert.Contains(t, err.Error(), "Error saving screenshot: ")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, statErr := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestScreenshotCommand_NoDisplay(t *testing.T) {
	fake := useFake(t, newFakeController(8, 8))
	fake.captureErr = desktop.ErrNoDisplay
	path := filepath.Join(t.TempDir(), "out.png")

	_, err := ScreenshotCommand(ScreenshotRequest{SavePath: path})
	require.Error(t, err)
	assert.Equal(t, ExitPlatform, ExitCode(err))
	assert.Equal(t, "Error taking screenshot: no active display found", err.Error())
	assert.True(t, errors.Is(err, desktop.ErrNoDisplay))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written when capture fails")
}

func TestScreenshotCommand_EmptyPath(t *testing.T) {
	useFake(t, newFakeController(8, 8))

	_, err := ScreenshotCommand(ScreenshotRequest{})
	require.Error(t, err)
	assert.Equal(t, ExitIO, ExitCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Error saving screenshot: "), err.Error())
}

func TestCapture_JPEG(t *testing.T) {
	useFake(t, newFakeController(32, 16))

	data, resp, err := Capture(CaptureOptions{Format: "JPEG", Quality: 200})
	require.NoError(t, err)
	assert.Equal(t, "jpeg", resp.Format)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestCapture_InvalidFormat(t *testing.T) {
	useFake(t, newFakeController(8, 8))

	_, _, err := Capture(CaptureOptions{Format: "gif"})
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestEncodeDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQID", EncodeDataURL("png", []byte{1, 2, 3}))
}
