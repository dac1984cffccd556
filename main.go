package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guidant/guidant/cli"
	"github.com/guidant/guidant/commands"
	"github.com/guidant/guidant/desktop"
	"github.com/guidant/guidant/utils"
)

func main() {
	// shutdown hook releases the X connection and stops the server
	hook := desktop.NewShutdownHook()
	commands.SetShutdownHook(hook)

	controller := desktop.NewController()
	commands.SetController(controller)
	hook.Register("desktop", controller.Close)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	var err error
	select {
	case <-sigChan:
		shutdown(hook)
		os.Exit(130)
	case err = <-done:
	}

	shutdown(hook)

	if err != nil {
		// command errors were already printed with their final wording
		var cmdErr *commands.Error
		if !errors.As(err, &cmdErr) {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	os.Exit(commands.ExitCode(err))
}

func shutdown(hook *desktop.ShutdownHook) {
	if err := hook.Shutdown(); err != nil {
		utils.Warn("Shutdown: %v", err)
	}
}
