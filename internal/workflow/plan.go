package workflow

import (
	"fmt"
	"math"

	"squeeze/internal/encoding"
	"squeeze/internal/services"
)

// Plan is the set of actions requested for every input file.
type Plan struct {
	// Trim holds the start and end timestamps, or nothing.
	Trim []string
	// Speed is the playback factor; zero leaves speed unchanged.
	Speed       float64
	ExportAudio bool
	Normalize   bool
	PrintOnly   bool
}

type step struct {
	action    encoding.Action
	configure func(*encoding.Task) error
}

// Validate rejects malformed action arguments before any file is touched.
func (p Plan) Validate() error {
	if len(p.Trim) != 0 && len(p.Trim) != 2 {
		return services.Wrap(services.ErrValidation, "plan", "trim", fmt.Sprintf("expected START and END, got %d values", len(p.Trim)), nil)
	}
	if p.Speed < 0 || math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) {
		return services.Wrap(services.ErrValidation, "plan", "speed", fmt.Sprintf("factor must be a positive number, got %v", p.Speed), nil)
	}
	return nil
}

// Actions lists the actions in execution order. Normalize runs when asked for
// or when no other action was requested.
func (p Plan) Actions() []encoding.Action {
	steps := p.steps()
	actions := make([]encoding.Action, 0, len(steps))
	for _, s := range steps {
		actions = append(actions, s.action)
	}
	return actions
}

func (p Plan) steps() []step {
	var steps []step
	if len(p.Trim) == 2 {
		start, end := p.Trim[0], p.Trim[1]
		steps = append(steps, step{encoding.ActionTrim, func(t *encoding.Task) error { return t.Trim(start, end) }})
	}
	if p.Speed > 0 {
		factor := p.Speed
		steps = append(steps, step{encoding.ActionSpeed, func(t *encoding.Task) error { return t.ChangeSpeed(factor) }})
	}
	if p.ExportAudio {
		steps = append(steps, step{encoding.ActionExportAudio, (*encoding.Task).ExportAudio})
	}
	if p.Normalize || len(steps) == 0 {
		steps = append(steps, step{encoding.ActionNormalize, (*encoding.Task).Normalize})
	}
	return steps
}
