// Package main provides UI utilities for the chatbot CLI.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// UI provides user-friendly output utilities.
type UI struct {
	noColor  bool
	jsonMode bool
}

// NewUI creates a new UI instance.
func NewUI(jsonMode, noColor bool) *UI {
	return &UI{
		noColor:  noColor,
		jsonMode: jsonMode,
	}
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("✓ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
	}
}

// Error prints an error message.
func (ui *UI) Error(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgRed).Printf("✗ %s\n", fmt.Sprintf(format, args...))
	}
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("⚠ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgYellow).Printf("⚠ %s\n", fmt.Sprintf(format, args...))
	}
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("ℹ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgCyan).Printf("ℹ %s\n", fmt.Sprintf(format, args...))
	}
}

// Section prints a section header.
func (ui *UI) Section(title string) {
	if ui.jsonMode {
		return
	}
	fmt.Println()
	if ui.noColor {
		fmt.Printf("━━━ %s ━━━\n", strings.ToUpper(title))
	} else {
		color.New(color.FgMagenta, color.Bold).Printf("━━━ %s ━━━\n", strings.ToUpper(title))
	}
	fmt.Println()
}

// KeyValue prints a key-value pair.
func (ui *UI) KeyValue(key string, value interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("  %s: %v\n", key, value)
	} else {
		color.New(color.FgYellow).Printf("  %s: ", key)
		fmt.Printf("%v\n", value)
	}
}

// Spinner starts a spinner with a message. Returns a stop function.
// Does nothing outside a terminal or in JSON mode.
func (ui *UI) Spinner(message string) func() {
	if ui.jsonMode || !IsTerminal() {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}

// IsTerminal checks if stdout is a terminal.
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
