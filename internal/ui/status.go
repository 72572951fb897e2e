package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	hintColor = color.New(color.FgHiBlack)

	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
)

// SetColor forces colour on or off for both status lines and Lip Gloss
// styles. Without a call, each library decides from NO_COLOR and whether
// stdout is a terminal.
func SetColor(enabled bool) {
	color.NoColor = !enabled
	if enabled {
		lipgloss.SetColorProfile(termenv.ANSI256)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects status and list output. Nil restores the defaults.
func SetOutput(out, errOut io.Writer) {
	if out == nil {
		out = color.Output
	}
	if errOut == nil {
		errOut = color.Error
	}
	stdout, stderr = out, errOut
}

func OK(msg string)   { fmt.Fprintln(stdout, okColor.Sprint("✔ "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, failColor.Sprint("✖ "+msg)) }
func Hint(msg string) { fmt.Fprintln(stderr, hintColor.Sprint(msg)) }
