package commands

import (
	"image"
	"image/color"
	"sync"

	"github.com/guidant/guidant/desktop"
)

type fakeController struct {
	mu         sync.Mutex
	img        *image.RGBA
	captureErr error
	clickErr   error
	displayErr error
	clicks     []desktop.Point
}

func newFakeController(w, h int) *fakeController {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return &fakeController{img: img}
}

func (f *fakeController) CaptureMainDisplay() (*image.RGBA, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.img, nil
}

func (f *fakeController) Click(p desktop.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicks = append(f.clicks, p)
	return nil
}

func (f *fakeController) Displays() ([]desktop.DisplayInfo, error) {
	if f.displayErr != nil {
		return nil, f.displayErr
	}
	b := f.img.Bounds()
	return []desktop.DisplayInfo{{Index: 0, Primary: true, Width: b.Dx(), Height: b.Dy()}}, nil
}

func (f *fakeController) Close() error { return nil }

// useFake installs f for the duration of the test.
func useFake(t interface{ Cleanup(func()) }, f *fakeController) *fakeController {
	SetController(f)
	t.Cleanup(func() { SetController(nil) })
	return f
}
