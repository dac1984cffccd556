package desktop

import (
	"fmt"
	"image"

	"github.com/guidant/guidant/utils"
	"github.com/kbinani/screenshot"
)

// screenCapturer captures through kbinani/screenshot, which picks
// CoreGraphics, GDI or X11 depending on the build target. Display 0 is
// the primary display on every backend.
type screenCapturer struct{}

func (screenCapturer) captureMainDisplay() (img *image.RGBA, err error) {
	// the X11 backend panics on some malformed replies
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("capture backend failed: %v", r)
		}
	}()

	if screenshot.NumActiveDisplays() == 0 {
		return nil, ErrNoDisplay
	}

	bounds := screenshot.GetDisplayBounds(0)
	if bounds.Empty() {
		return nil, ErrNoDisplay
	}
	utils.Verbose("Capturing primary display %v", bounds)

	img, err = screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	if img == nil {
		return nil, ErrNoDisplay
	}

	return img, nil
}

func (screenCapturer) displays() ([]DisplayInfo, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplay
	}

	list := make([]DisplayInfo, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, displayInfo(i, screenshot.GetDisplayBounds(i)))
	}
	return list, nil
}

func displayInfo(index int, bounds image.Rectangle) DisplayInfo {
	return DisplayInfo{
		Index:   index,
		Primary: index == 0,
		X:       bounds.Min.X,
		Y:       bounds.Min.Y,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}
}
