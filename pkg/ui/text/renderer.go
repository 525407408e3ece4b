// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/bub/pkg/display"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) RenderPlan(plan *types.Plan) error {
	return display.WritePlan(r.output, display.ConvertPlan(plan), display.Plain)
}

func (r *Renderer) RenderResult(pkg string, result executor.Result) error {
	return display.WriteResult(r.output, display.ConvertResult(pkg, result), display.Plain)
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
