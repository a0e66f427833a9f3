// Unix/Darwin signal handling.
//
// SIGINT (Ctrl+C) and SIGTERM cancel the running command, which stops a
// watch loop or aborts an in-flight request.

//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// signalChannel returns a channel that receives SIGINT and SIGTERM. It is
// buffered so a signal is not lost while the receiver is busy.
func signalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}
