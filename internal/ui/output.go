// Package ui prints CLI progress banners. Everything goes to stderr so that
// stdout stays clean for the result JSON.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

const headerWidth = 60

// Header prints a formatted header
func Header(text string) {
	line := strings.Repeat("=", headerWidth)
	green.Fprintf(os.Stderr, "\n%s\n", line)
	green.Fprintf(os.Stderr, "%-60s\n", center(text, headerWidth))
	green.Fprintf(os.Stderr, "%s\n\n", line)
}

// Step prints a step indicator
func Step(stepNum, totalSteps int, text string) {
	yellow.Fprintf(os.Stderr, "[%d/%d] %s\n", stepNum, totalSteps, text)
}

// Success prints a success message
func Success(text string) {
	green.Fprintf(os.Stderr, "  → %s\n", text)
}

// Info prints an info message
func Info(text string) {
	fmt.Fprintf(os.Stderr, "  → %s\n", text)
}

// Warning prints a warning message
func Warning(text string) {
	yellow.Fprintf(os.Stderr, "  ⚠ %s\n", text)
}

// Error prints an error message
func Error(text string) {
	red.Fprintf(os.Stderr, "Error: %s\n", text)
}

// center left-pads text to sit in the middle of width. Text wider than the
// banner is printed as is.
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}
