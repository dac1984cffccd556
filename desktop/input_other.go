//go:build !linux && !freebsd && !netbsd && !openbsd && !darwin && !windows

package desktop

type unsupportedInput struct{}

func newInputBackend() clicker {
	return unsupportedInput{}
}

func (unsupportedInput) click(Point) error {
	return ErrUnsupported
}

func (unsupportedInput) close() error {
	return nil
}
