package desktop

import (
	"errors"
	"image"
	"sync"
)

var (
	// ErrNoDisplay is returned when no active display can be found, e.g.
	// when running headless or without screen recording permission.
	ErrNoDisplay = errors.New("no active display found")

	// ErrUnsupported is returned by backends that are not available on
	// the current platform.
	ErrUnsupported = errors.New("not supported on this platform")
)

// Point is a location in the screen coordinate space used by the OS
// input subsystem, origin at the top-left of the primary display.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DisplayInfo describes an active display.
type DisplayInfo struct {
	Index   int  `json:"index"`
	Primary bool `json:"primary"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
}

// Controller is the desktop session this process drives.
type Controller interface {
	// CaptureMainDisplay grabs the full frame of the primary display.
	CaptureMainDisplay() (*image.RGBA, error)
	// Click posts a left button down followed by a left button up at p.
	// Nothing is posted when p is out of range or the backend cannot be
	// reached. If the down lands and the up keeps failing, the returned
	// error says the button may still be held.
	Click(p Point) error
	Displays() ([]DisplayInfo, error)
	Close() error
}

// capturer and clicker are the swappable halves of the native controller.
type capturer interface {
	captureMainDisplay() (*image.RGBA, error)
	displays() ([]DisplayInfo, error)
}

type clicker interface {
	click(p Point) error
	close() error
}

// NativeController drives the local desktop session. Calls are
// serialized, so a click's down/up pair is never interleaved with
// another request.
type NativeController struct {
	mu      sync.Mutex
	capture capturer
	input   clicker
}

// NewController returns a controller for the platform this binary was
// built for.
func NewController() *NativeController {
	return &NativeController{
		capture: screenCapturer{},
		input:   newInputBackend(),
	}
}

func (c *NativeController) CaptureMainDisplay() (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture.captureMainDisplay()
}

func (c *NativeController) Click(p Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.click(p)
}

func (c *NativeController) Displays() ([]DisplayInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture.displays()
}

func (c *NativeController) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.close()
}
