//go:build linux || freebsd || netbsd || openbsd

package desktop

import (
	"fmt"
	"math"

	"github.com/guidant/guidant/utils"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
)

const leftButton = 1

// x11Input injects events through the XTEST extension. The connection
// is opened on first use and kept until close.
type x11Input struct {
	conn *xgb.Conn
	root xproto.Window
}

func newInputBackend() clicker {
	return &x11Input{}
}

func (x *x11Input) connect() error {
	if x.conn != nil {
		return nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("cannot connect to X server: %w", err)
	}

	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return fmt.Errorf("XTEST extension unavailable: %w", err)
	}

	x.conn = conn
	x.root = xproto.Setup(conn).DefaultScreen(conn).Root
	utils.Verbose("Connected to X server, root window %d", x.root)
	return nil
}

func (x *x11Input) click(p Point) error {
	rootX, rootY, err := toInt16(p)
	if err != nil {
		return err
	}

	if err := x.connect(); err != nil {
		return err
	}

	return leftClick(x.fake, rootX, rootY)
}

type postFunc func(eventType, detail byte, rootX, rootY int16) error

// leftClick moves the pointer, then presses and releases the left
// button. Once the press has landed, a failed release is retried once
// before giving up.
func leftClick(post postFunc, rootX, rootY int16) error {
	// pointer has to be at the target before the press lands
	if err := post(xproto.MotionNotify, 0, rootX, rootY); err != nil {
		return fmt.Errorf("failed to move pointer: %w", err)
	}
	if err := post(xproto.ButtonPress, leftButton, rootX, rootY); err != nil {
		return fmt.Errorf("failed to post button press: %w", err)
	}

	err := post(xproto.ButtonRelease, leftButton, rootX, rootY)
	if err != nil {
		utils.Warn("Button release failed, retrying: %v", err)
		err = post(xproto.ButtonRelease, leftButton, rootX, rootY)
	}
	if err != nil {
		return fmt.Errorf("failed to post button release, left button may still be held: %w", err)
	}

	return nil
}

func (x *x11Input) fake(eventType, detail byte, rootX, rootY int16) error {
	return xtest.FakeInputChecked(x.conn, eventType, detail, 0, x.root, rootX, rootY, 0).Check()
}

func (x *x11Input) close() error {
	if x.conn != nil {
		x.conn.Close()
		x.conn = nil
	}
	return nil
}

// toInt16 rounds p to the nearest pixel of the X11 coordinate range.
func toInt16(p Point) (int16, int16, error) {
	rx, ry := math.Round(p.X), math.Round(p.Y)
	if rx < math.MinInt16 || rx > math.MaxInt16 || ry < math.MinInt16 || ry > math.MaxInt16 {
		return 0, 0, fmt.Errorf("coordinates (%v, %v) are outside the X11 coordinate range", p.X, p.Y)
	}
	return int16(rx), int16(ry), nil
}
