// Package rendering draws roadmap trees as SVG diagrams and, optionally, PNG images.
package rendering

import "fmt"

// Stages at which a diagram can fail.
const (
	StageTemplate  = "template"
	StageRasterize = "rasterize"
)

// Error reports a diagram that could not be produced.
type Error struct {
	Stage   string
	Diagram string // diagram title, or the pixel size for rasterization
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s failed for %s", e.Stage, e.Diagram)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.Diagram, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
