package commands

import (
	"fmt"
	"math"

	"github.com/guidant/guidant/desktop"
	"github.com/guidant/guidant/utils"
)

// ClickResponse represents the response for a click command
type ClickResponse struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Message string  `json:"message"`
}

// ClickMessage is the status line printed after a successful click.
func ClickMessage(x, y float64) string {
	return fmt.Sprintf("Clicked at (%s, %s)", FormatCoordinate(x), FormatCoordinate(y))
}

// ClickCommand posts a left button down and up at (req.X, req.Y).
func ClickCommand(req ClickRequest) (*ClickResponse, error) {
	if math.IsNaN(req.X) || math.IsNaN(req.Y) || math.IsInf(req.X, 0) || math.IsInf(req.Y, 0) {
		return nil, usageError(InvalidCoords)
	}

	utils.Verbose("Posting left click at (%v, %v)", req.X, req.Y)
	err := GetController().Click(desktop.Point{X: req.X, Y: req.Y})
	if err != nil {
		return nil, &Error{
			Kind:    KindPlatform,
			Message: fmt.Sprintf("Error clicking: %v", err),
			Err:     err,
		}
	}

	return &ClickResponse{
		X:       req.X,
		Y:       req.Y,
		Message: ClickMessage(req.X, req.Y),
	}, nil
}
