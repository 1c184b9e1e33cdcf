package calculation

import (
	"github.com/arthaplan/engine/internal/domain"
)

// tracer accumulates the ordered audit log of every computed quantity.
// Steps are appended in computation order; concurrent sections append their
// steps only after joining, in input order, so the published trace is
// deterministic.
type tracer struct {
	steps []domain.TraceStep
}

func newTracer() *tracer {
	return &tracer{steps: make([]domain.TraceStep, 0, 32)}
}

func (t *tracer) record(stepID, description string, inputs map[string]string, result string) {
	t.steps = append(t.steps, domain.TraceStep{
		StepID:      stepID,
		Description: description,
		Inputs:      inputs,
		Result:      result,
	})
}

func (t *tracer) append(steps ...domain.TraceStep) {
	t.steps = append(t.steps, steps...)
}

// in builds the inputs map from alternating key/value pairs.
func in(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}
