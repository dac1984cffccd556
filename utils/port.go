package utils

import (
	"fmt"
	"net"
)

// CheckAddressAvailable reports an error if nothing can listen on addr.
// A daemonized server cannot tell its parent that the port is taken, so
// the parent checks first.
func CheckAddressAvailable(addr string) error {
	Verbose("Checking if %s is available", addr)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}

	return listener.Close()
}
