// Package output creates the termenv outputs used for colored CLI output.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile for CLI output. NO_COLOR forces Ascii.
// Otherwise the profile is detected from the terminal when detect is true,
// and plain ANSI is used when it is false.
func Profile(detect bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if detect {
		return termenv.EnvColorProfile()
	}
	return termenv.ANSI
}

// New returns an output for w, or stderr when w is nil, with a detected profile.
func New(w io.Writer) *termenv.Output {
	return newOutput(w, Profile(true))
}

// NewANSI returns an output for w, or stderr when w is nil, that colors with
// ANSI codes even when w is not a terminal, as CI logs expect.
func NewANSI(w io.Writer) *termenv.Output {
	return newOutput(w, Profile(false))
}

func newOutput(w io.Writer, profile termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}
