package desktop

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCapturer struct {
	img  *image.RGBA
	list []DisplayInfo
	err  error
}

func (s stubCapturer) captureMainDisplay() (*image.RGBA, error) { return s.img, s.err }
func (s stubCapturer) displays() ([]DisplayInfo, error)        { return s.list, s.err }

type recordingClicker struct {
	mu     sync.Mutex
	active int
	maxAct int
	points []Point
	closed bool
}

func (r *recordingClicker) click(p Point) error {
	r.mu.Lock()
	r.active++
	if r.active > r.maxAct {
		r.maxAct = r.active
	}
	r.mu.Unlock()

	time.Sleep(time.Millisecond)

	r.mu.Lock()
	r.active--
	r.points = append(r.points, p)
	r.mu.Unlock()
	return nil
}

func (r *recordingClicker) close() error {
	r.closed = true
	return nil
}

func TestNativeController_Delegates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	input := &recordingClicker{}
	c := &NativeController{
		capture: stubCapturer{img: img, list: []DisplayInfo{displayInfo(0, img.Bounds())}},
		input:   input,
	}

	got, err := c.CaptureMainDisplay()
	require.NoError(t, err)
	assert.Same(t, img, got)

	list, err := c.Displays()
	require.NoError(t, err)
	assert.Equal(t, []DisplayInfo{{Index: 0, Primary: true, Width: 4, Height: 3}}, list)

	require.NoError(t, c.Click(Point{X: 1.5, Y: 2}))
	assert.Equal(t, []Point{{X: 1.5, Y: 2}}, input.points)

	require.NoError(t, c.Close())
	assert.True(t, input.closed)
}

func TestNativeController_PropagatesCaptureError(t *testing.T) {
	c := &NativeController{capture: stubCapturer{err: ErrNoDisplay}, input: &recordingClicker{}}

	_, err := c.CaptureMainDisplay()
	assert.True(t, errors.Is(err, ErrNoDisplay))
}

func TestNativeController_SerializesClicks(t *testing.T) {
	input := &recordingClicker{}
	c := &NativeController{capture: stubCapturer{}, input: input}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = c.Click(Point{X: float64(n), Y: float64(n)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, input.points, 8)
	assert.Equal(t, 1, input.maxAct)
}

func TestDisplayInfo(t *testing.T) {
	info := displayInfo(1, image.Rect(1920, -200, 3840, 880))
	assert.Equal(t, DisplayInfo{Index: 1, Primary: false, X: 1920, Y: -200, Width: 1920, Height: 1080}, info)
}
