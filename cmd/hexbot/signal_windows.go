// Windows signal handling.
//
// Windows has no SIGTERM, so only [os.Interrupt] cancels the running
// command. The Go runtime maps CTRL_BREAK_EVENT and console-close events to
// os.Interrupt.

//go:build windows

package main

import (
	"os"
	"os/signal"
)

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// signalChannel returns a channel that receives os.Interrupt. It is
// buffered so a signal is not lost while the receiver is busy.
func signalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch
}
