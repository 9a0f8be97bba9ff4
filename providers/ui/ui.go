/*
Package ui provides the console presentation primitives used to notify the
user, styled per severity.

Usage:
	todo:
*/
package ui

import (
	"fmt"

	"github.com/gookit/color"
)

// Printer interface defines the two notification channels.
type Printer interface {
	// Warning emits a warning-styled message to the console.
	Warning(format string, args ...interface{})
	// Alert emits an alert-styled message to the console.
	Alert(format string, args ...interface{})
}

// NewConsolePrinter constructs the default color console Printer.
func NewConsolePrinter() Printer {
	return &ConsolePrinter{}
}

// ConsolePrinter writes styled messages to stdout.
type ConsolePrinter struct{}

// Warning emits a warning-styled (yellow) message to the console.
func (cp ConsolePrinter) Warning(format string, args ...interface{}) {
	color.Yellow.Println(fmt.Sprintf(format, args...))
}

// Alert emits an alert-styled (red) message to the console.
func (cp ConsolePrinter) Alert(format string, args ...interface{}) {
	color.Red.Println(fmt.Sprintf(format, args...))
}

// RecordingPrinter stores messages in memory (usefull for testing notification contents).
type RecordingPrinter struct {
	Warnings []string
	Alerts   []string
}

// Warning records a warning-styled message.
func (rp *RecordingPrinter) Warning(format string, args ...interface{}) {
	rp.Warnings = append(rp.Warnings, fmt.Sprintf(format, args...))
}

// Alert records an alert-styled message.
func (rp *RecordingPrinter) Alert(format string, args ...interface{}) {
	rp.Alerts = append(rp.Alerts, fmt.Sprintf(format, args...))
}
