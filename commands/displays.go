package commands

import (
	"fmt"

	"github.com/guidant/guidant/desktop"
)

// DisplaysResponse lists the active displays, primary first.
type DisplaysResponse struct {
	Displays []desktop.DisplayInfo `json:"displays"`
}

func DisplaysCommand() *CommandResponse {
	list, err := GetController().Displays()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error listing displays: %w", err))
	}

	return NewSuccessResponse(DisplaysResponse{Displays: list})
}
