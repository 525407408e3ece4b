// Package terminal provides rich terminal output styled with lipgloss
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/bub/pkg/display"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/arthur-debert/bub/pkg/ui/styles"
)

// Renderer writes styled output for interactive terminals
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) RenderPlan(plan *types.Plan) error {
	return display.WritePlan(r.output, display.ConvertPlan(plan), styles.Render)
}

func (r *Renderer) RenderResult(pkg string, result executor.Result) error {
	return display.WriteResult(r.output, display.ConvertResult(pkg, result), styles.Render)
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", styles.Render("Error", "Error:"), err)
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
