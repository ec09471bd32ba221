package planner

import (
	"fmt"

	"sayplan.app/pkg/eventstore"
)

// StepKind names one event store call within a plan.
type StepKind string

const (
	StepUpdate          StepKind = "update"
	StepCreate          StepKind = "create"
	StepDelete          StepKind = "delete"
	StepDeleteFollowing StepKind = "delete-following"
	StepDeleteSeries    StepKind = "delete-series"
	StepUpdateSeries    StepKind = "update-series"
)

type StepResult struct {
	Kind      StepKind `json:"kind"`
	Succeeded bool     `json:"succeeded"`
}

// Outcome records, in order, every store call a plan issued. Multi-step
// plans are not atomic: when a later step fails the earlier ones have
// already been applied, and the step list is how callers tell the
// difference.
type Outcome struct {
	Steps []StepResult `json:"steps"`
	// Event is the event returned by the final create or update call, if
	// the plan issued one.
	Event *eventstore.Event `json:"event,omitempty"`
}

func newOutcome() *Outcome {
	return &Outcome{
		Steps: []StepResult{},
		Event: nil,
	}
}

// PartiallyApplied reports whether at least one step succeeded before a
// later one failed.
func (o *Outcome) PartiallyApplied() bool {
	failed := false
	succeeded := 0
	for _, step := range o.Steps {
		if step.Succeeded {
			succeeded++
		} else {
			failed = true
		}
	}
	return failed && succeeded > 0
}

func (o *Outcome) run(kind StepKind, call func() error) error {
	err := call()
	o.Steps = append(o.Steps, StepResult{Kind: kind, Succeeded: err == nil})
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}
