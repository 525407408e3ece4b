package ui

import (
	"strings"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode is the --color setting
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (c ColorMode) String() string {
	switch c {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses always, auto or never
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s).
			WithDetail("value", s)
	}
}

// Set implements pflag.Value
func (c *ColorMode) Set(s string) error {
	parsed, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value
func (c *ColorMode) Type() string {
	return "when"
}

// Apply settles the format to use once auto detection and the color mode
// are taken into account. Forcing color also forces lipgloss to emit ANSI
// sequences on non-terminals.
func (c ColorMode) Apply(format Format, detected Format) Format {
	if format == FormatAuto {
		format = detected
	}
	if format == FormatJSON {
		return format
	}

	switch c {
	case ColorNever:
		return FormatText
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
		return FormatTerminal
	default:
		return format
	}
}
