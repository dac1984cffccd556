package desktop

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>

// Both events are created before either is posted.
static int postLeftClick(double x, double y) {
	CGPoint point = CGPointMake(x, y);
	CGEventRef down = CGEventCreateMouseEvent(NULL, kCGEventLeftMouseDown, point, kCGMouseButtonLeft);
	if (down == NULL) {
		return 1;
	}
	CGEventRef up = CGEventCreateMouseEvent(NULL, kCGEventLeftMouseUp, point, kCGMouseButtonLeft);
	if (up == NULL) {
		CFRelease(down);
		return 2;
	}
	CGEventPost(kCGHIDEventTap, down);
	CGEventPost(kCGHIDEventTap, up);
	CFRelease(up);
	CFRelease(down);
	return 0;
}
*/
import "C"

import (
	"errors"
)

type quartzInput struct{}

func newInputBackend() clicker {
	return quartzInput{}
}

func (quartzInput) click(p Point) error {
	switch C.postLeftClick(C.double(p.X), C.double(p.Y)) {
	case 0:
		return nil
	case 1:
		return errors.New("cannot create mouse down event")
	default:
		return errors.New("cannot create mouse up event")
	}
}

func (quartzInput) close() error {
	return nil
}
