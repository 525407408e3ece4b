package display

import (
	"fmt"
	"io"

	"github.com/arthur-debert/bub/pkg/types"
)

// Painter styles a piece of text by semantic style name. Plain output
// passes text through unchanged.
type Painter func(style, text string) string

// Plain is the Painter for unstyled output
func Plain(_ string, text string) string { return text }

// WritePlan prints a plan view line by line
func WritePlan(w io.Writer, v PlanView, paint Painter) error {
	lines := []string{
		paint("Heading", PlanHeading),
		"Package: " + paint("Package", v.Package),
		"Target: " + paint("Target", v.Target),
	}

	for _, l := range v.Lines {
		arrow := paint("Arrow", "->")
		if l.Type == types.HardLink {
			lines = append(lines, fmt.Sprintf("%s (%s) %s %s",
				paint("Dest", l.Dest), paint("HardLink", "hard link"), arrow, paint("Src", l.Src)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", paint("Dest", l.Dest), arrow, paint("Src", l.Src)))
	}

	lines = append(lines, "If a target file already exists, it will "+
		paint(StrategyStyle(v.ConflictStrategy), v.ConflictStrategy.Describe()))
	if s := v.DirsSentence(); s != "" {
		lines = append(lines, paint("Warning", s))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult prints the one line summary of an execution
func WriteResult(w io.Writer, v ResultView, paint Painter) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", paint("Package", v.Package), paint("Success", v.Summary))
	return err
}

// StrategyStyle names the style used for a conflict strategy
func StrategyStyle(cs types.ConflictStrategy) string {
	switch cs {
	case types.Adopt:
		return "StrategyAdopt"
	case types.Ignore:
		return "StrategyIgnore"
	case types.Move:
		return "StrategyMove"
	case types.Overwrite:
		return "StrategyOverwrite"
	default:
		return "StrategyError"
	}
}
