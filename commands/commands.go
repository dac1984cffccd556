package commands

import (
	"errors"
	"sync"

	"github.com/guidant/guidant/desktop"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// ErrorKind classifies a failure so callers can pick an exit status.
type ErrorKind int

const (
	// KindUsage covers missing or malformed arguments.
	KindUsage ErrorKind = iota + 1
	// KindPlatform covers an unavailable capture or input subsystem.
	KindPlatform
	// KindIO covers failures writing the output file.
	KindIO
)

// Exit statuses returned by the executable.
const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitPlatform = 2
	ExitIO       = 3
)

// Error is a classified command failure. Message is the exact line
// shown to the user; Err is the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func usageError(message string) *Error {
	return &Error{Kind: KindUsage, Message: message}
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cmdErr *Error
	if !errors.As(err, &cmdErr) {
		return ExitUsage
	}

	switch cmdErr.Kind {
	case KindPlatform:
		return ExitPlatform
	case KindIO:
		return ExitIO
	default:
		return ExitUsage
	}
}

var (
	controllerMu sync.Mutex
	controller   desktop.Controller
)

// SetController replaces the desktop controller used by all commands.
// main leaves it unset and gets the native one; tests install fakes.
func SetController(c desktop.Controller) {
	controllerMu.Lock()
	defer controllerMu.Unlock()
	controller = c
}

// GetController returns the active controller, creating the native one
// on first use.
func GetController() desktop.Controller {
	controllerMu.Lock()
	defer controllerMu.Unlock()
	if controller == nil {
		controller = desktop.NewController()
	}
	return controller
}

// shutdownHook holds the hook used to release desktop resources. It is
// set once at startup via SetShutdownHook.
var shutdownHook *desktop.ShutdownHook

func SetShutdownHook(hook *desktop.ShutdownHook) {
	shutdownHook = hook
}

func GetShutdownHook() *desktop.ShutdownHook {
	return shutdownHook
}
