package desktop

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/lxn/win"
)

type sendInput struct{}

func newInputBackend() clicker {
	return sendInput{}
}

func (sendInput) click(p Point) error {
	w := win.GetSystemMetrics(win.SM_CXSCREEN)
	h := win.GetSystemMetrics(win.SM_CYSCREEN)
	if w <= 1 || h <= 1 {
		return ErrNoDisplay
	}

	dx, dy := normalize(p.X, w), normalize(p.Y, h)
	flags := uint32(win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_MOVE)
	inputs := []win.MOUSE_INPUT{
		{Type: win.INPUT_MOUSE, Mi: win.MOUSEINPUT{Dx: dx, Dy: dy, DwFlags: flags | win.MOUSEEVENTF_LEFTDOWN}},
		{Type: win.INPUT_MOUSE, Mi: win.MOUSEINPUT{Dx: dx, Dy: dy, DwFlags: flags | win.MOUSEEVENTF_LEFTUP}},
	}

	sent := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0])))
	if sent == 0 {
		return errors.New("SendInput was blocked by another thread or by UIPI")
	}
	if sent == 1 {
		// the press went through, so try to let go of the button
		if win.SendInput(1, unsafe.Pointer(&inputs[1]), int32(unsafe.Sizeof(inputs[1]))) == 1 {
			return nil
		}
		return errors.New("SendInput posted the button press but not the release, left button may still be held")
	}
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput posted %d of %d events", sent, len(inputs))
	}
	return nil
}

func (sendInput) close() error {
	return nil
}

// normalize maps a pixel coordinate onto the 0..65535 absolute range
// SendInput expects.
func normalize(v float64, extent int32) int32 {
	n := math.Round(v * 65535 / float64(extent-1))
	return int32(math.Max(0, math.Min(65535, n)))
}
