// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/bub/pkg/display"
	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/types"
)

// Renderer provides JSON output for machine consumption. Each call writes
// one JSON document.
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderPlan encodes the plan with absolute paths
func (r *Renderer) RenderPlan(plan *types.Plan) error {
	return r.encoder.Encode(plan)
}

func (r *Renderer) RenderResult(pkg string, result executor.Result) error {
	return r.encoder.Encode(display.ConvertResult(pkg, result))
}

// RenderError encodes the error message with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]interface{}{
		"error":   err.Error(),
		"code":    errors.GetErrorCode(err),
		"details": errors.GetErrorDetails(err),
	})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
