package algo

import (
	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// Params carries the optional operands of an operation. Pointer fields are
// nil when the caller did not supply them.
type Params struct {
	Value  *int `mapstructure:"value" json:"value,omitempty" yaml:"value,omitempty"`
	Index  *int `mapstructure:"index" json:"index,omitempty" yaml:"index,omitempty"`
	Start  *int `mapstructure:"start" json:"start,omitempty" yaml:"start,omitempty"`
	Target *int `mapstructure:"target" json:"target,omitempty" yaml:"target,omitempty"`
	Window int  `mapstructure:"window" json:"window,omitempty" yaml:"window,omitempty"`
}

// Int is a convenience for building Params literals.
func Int(v int) *int { return &v }

func (p Params) start() int {
	if p.Start == nil {
		return 0
	}
	return *p.Start
}

func (p Params) target() int {
	if p.Target == nil {
		return -1
	}
	return *p.Target
}

// Outcome is what a generator proposes. Final is nil when the structure is
// left as it was; Applied is false when a precondition failed and the trace
// is a single informational step.
type Outcome struct {
	Steps   trace.Steps
	Final   structure.Structure
	Result  *int
	Applied bool
}

func readOnly(steps trace.Steps) Outcome {
	return Outcome{Steps: steps, Applied: true}
}

func informational(elems []trace.Element, desc string) Outcome {
	b := trace.NewBuilder(1)
	b.Push(trace.Step{Elements: elems, Description: desc, LineIndex: trace.NoLine})
	return Outcome{Steps: b.Steps()}
}
