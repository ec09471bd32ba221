// Package planner turns an edit or deletion of a (possibly recurring)
// event into the sequence of event store calls that realizes it, and
// exposes the strategy choices a user must make when the edit is
// ambiguous. It is a pure function of its explicit inputs plus the
// injected store; it holds no state of its own.
package planner

import (
	"context"
	"errors"
	"fmt"

	"sayplan.app/pkg/eventstore"
)

// Strategy names the user-facing choices for edits and deletions that
// touch a recurring series.
type Strategy string

const (
	// StrategyThisOnly targets just the one occurrence, detaching it from
	// its series.
	StrategyThisOnly Strategy = "this"
	// StrategyFollowing targets the occurrence and everything after it.
	StrategyFollowing Strategy = "following"
	// StrategyAll targets the entire series regardless of date.
	StrategyAll Strategy = "all"
)

var (
	// ErrStrategyRequired is returned when an operation on a series member
	// is submitted without picking a strategy.
	ErrStrategyRequired = errors.New("a strategy is required for recurring events")
	// ErrStrategyNotAllowed is returned when "this occurrence only" is
	// picked together with a changed recurrence pattern; detaching one
	// occurrence while rewriting the whole pattern would silently discard
	// the pattern edit.
	ErrStrategyNotAllowed = errors.New("strategy not available for this edit")
	ErrUnknownStrategy    = errors.New("unknown strategy")
	// ErrMissingRule is returned when a series member is edited but its
	// rule could not be resolved.
	ErrMissingRule = errors.New("recurring event has no resolvable rule")
)

// Transition classifies an update by whether the event was, and will
// remain, part of a recurring series.
type Transition int

const (
	DirectUpdate Transition = iota
	PromoteToSeries
	DemoteToSingle
	EditSeries
)

func (t Transition) String() string {
	switch t {
	case DirectUpdate:
		return "direct-update"
	case PromoteToSeries:
		return "promote-to-series"
	case DemoteToSingle:
		return "demote-to-single"
	case EditSeries:
		return "edit-series"
	default:
		return "unknown"
	}
}

// ClassifyUpdate derives the transition case from the previous persisted
// event and the proposed payload.
func ClassifyUpdate(prev eventstore.Event, next eventstore.UpdateEventDto) Transition {
	wasRecurring := prev.RecurringEventID != nil
	willBeRecurring := next.HasRecurrence()

	switch {
	case !wasRecurring && !willBeRecurring:
		return DirectUpdate
	case !wasRecurring && willBeRecurring:
		return PromoteToSeries
	case wasRecurring && !willBeRecurring:
		return DemoteToSingle
	default:
		return EditSeries
	}
}

// PatternChanged compares the proposed recurrence field-by-field against
// the persisted rule. Any difference in rule string, start date or end
// date counts as a change.
func PatternChanged(current eventstore.RecurringRule, next *eventstore.RecurringRuleDto) bool {
	if next == nil {
		return true
	}
	return current.Rule != next.Rule ||
		current.StartDate != next.StartDate ||
		current.EndDate != next.EndDate
}

// UpdateStrategies returns the choices to offer the user for an edit. An
// empty slice means the edit is unambiguous and needs no choice.
// "This occurrence only" is offered only while the recurrence pattern is
// unchanged.
func UpdateStrategies(
	prev eventstore.Event,
	rule *eventstore.RecurringRule,
	next eventstore.UpdateEventDto,
) []Strategy {
	if ClassifyUpdate(prev, next) != EditSeries {
		return []Strategy{}
	}

	strategies := []Strategy{}
	if rule != nil && !PatternChanged(*rule, next.Recurring) {
		strategies = append(strategies, StrategyThisOnly)
	}
	return append(strategies, StrategyFollowing, StrategyAll)
}

// DeleteStrategies returns the choices to offer for a deletion: none for
// a standalone event, the full three-way choice for a series member.
func DeleteStrategies(prev eventstore.Event) []Strategy {
	if prev.RecurringEventID == nil {
		return []Strategy{}
	}
	return []Strategy{StrategyThisOnly, StrategyFollowing, StrategyAll}
}

// Planner sequences event store calls. One planner instance executes one
// mutation at a time; callers are responsible for not submitting a second
// mutation while one is in flight.
type Planner struct {
	store eventstore.Client
}

func New(store eventstore.Client) *Planner {
	return &Planner{store: store}
}

// Update realizes the proposed edit. For series-to-series edits strategy
// must be one of UpdateStrategies; for all other transitions it is
// ignored. The returned outcome lists every store call that was issued
// and whether it succeeded, so callers can tell "nothing changed" from
// "partially changed" when an error is also returned.
func (p *Planner) Update(
	ctx context.Context,
	prev eventstore.Event,
	rule *eventstore.RecurringRule,
	next eventstore.UpdateEventDto,
	strategy Strategy,
) (*Outcome, error) {
	switch ClassifyUpdate(prev, next) {
	case DirectUpdate:
		return p.directUpdate(ctx, prev, next)
	case PromoteToSeries:
		return p.promoteToSeries(ctx, prev, next)
	case DemoteToSingle:
		return p.demoteToSingle(ctx, prev, next)
	default:
		return p.editSeries(ctx, prev, rule, next, strategy)
	}
}

// Delete realizes a deletion. Strategy is required when the event belongs
// to a series and ignored otherwise.
func (p *Planner) Delete(
	ctx context.Context,
	prev eventstore.Event,
	strategy Strategy,
) (*Outcome, error) {
	outcome := newOutcome()

	if prev.RecurringEventID == nil {
		err := outcome.run(StepDelete, func() error {
			return p.store.DeleteEvent(ctx, prev.ID)
		})
		return outcome, err
	}

	switch strategy {
	case StrategyThisOnly:
		err := outcome.run(StepDelete, func() error {
			return p.store.DeleteEvent(ctx, prev.ID)
		})
		return outcome, err
	case StrategyFollowing:
		err := outcome.run(StepDeleteFollowing, func() error {
			return p.store.DeleteFromEvent(ctx, prev.ID)
		})
		return outcome, err
	case StrategyAll:
		err := outcome.run(StepDeleteSeries, func() error {
			return p.store.DeleteSeries(ctx, *prev.RecurringEventID)
		})
		return outcome, err
	case "":
		return outcome, ErrStrategyRequired
	default:
		return outcome, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func (p *Planner) directUpdate(
	ctx context.Context,
	prev eventstore.Event,
	next eventstore.UpdateEventDto,
) (*Outcome, error) {
	outcome := newOutcome()
	err := outcome.run(StepUpdate, func() error {
		event, err := p.store.UpdateEvent(ctx, prev.ID, next)
		outcome.Event = event
		return err
	})
	return outcome, err
}

// promoteToSeries replaces a standalone event with a freshly created
// series. Nothing else references the old event, so no choice is needed.
func (p *Planner) promoteToSeries(
	ctx context.Context,
	prev eventstore.Event,
	next eventstore.UpdateEventDto,
) (*Outcome, error) {
	outcome := newOutcome()

	err := outcome.run(StepDelete, func() error {
		return p.store.DeleteEvent(ctx, prev.ID)
	})
	if err != nil {
		return outcome, err
	}

	err = outcome.run(StepCreate, func() error {
		event, err := p.store.CreateEvent(ctx, next)
		outcome.Event = event
		return err
	})
	return outcome, err
}

// demoteToSingle removes the entire series and creates one standalone
// event from the submitted data. There is no per-occurrence demotion for
// a recurring-to-single transition.
func (p *Planner) demoteToSingle(
	ctx context.Context,
	prev eventstore.Event,
	next eventstore.UpdateEventDto,
) (*Outcome, error) {
	outcome := newOutcome()

	err := outcome.run(StepDeleteSeries, func() error {
		return p.store.DeleteSeries(ctx, *prev.RecurringEventID)
	})
	if err != nil {
		return outcome, err
	}

	err = outcome.run(StepCreate, func() error {
		event, err := p.store.CreateEvent(ctx, next)
		outcome.Event = event
		return err
	})
	return outcome, err
}

//nolint:gocognit //the strategy cases read best in one place
func (p *Planner) editSeries(
	ctx context.Context,
	prev eventstore.Event,
	rule *eventstore.RecurringRule,
	next eventstore.UpdateEventDto,
	strategy Strategy,
) (*Outcome, error) {
	outcome := newOutcome()

	if rule == nil {
		fetched, err := p.store.GetRecurringEvent(ctx, *prev.RecurringEventID)
		if err != nil || fetched == nil {
			return outcome, ErrMissingRule
		}
		rule = fetched
	}

	changed := PatternChanged(*rule, next.Recurring)

	switch strategy {
	case StrategyThisOnly:
		if changed {
			return outcome, ErrStrategyNotAllowed
		}

		detached := next
		detached.Recurring = nil
		err := outcome.run(StepUpdate, func() error {
			event, err := p.store.UpdateEvent(ctx, prev.ID, detached)
			outcome.Event = event
			return err
		})
		return outcome, err

	case StrategyFollowing:
		err := outcome.run(StepDeleteFollowing, func() error {
			return p.store.DeleteFromEvent(ctx, prev.ID)
		})
		if err != nil {
			return outcome, err
		}

		// the new series starts at this occurrence's date
		create := next
		recurring := *next.Recurring
		recurring.StartDate = prev.StartDate()
		create.Recurring = &recurring

		err = outcome.run(StepCreate, func() error {
			event, err := p.store.CreateEvent(ctx, create)
			outcome.Event = event
			return err
		})
		return outcome, err

	case StrategyAll:
		if !changed {
			// the pattern is intact, so a single bulk update of the
			// non-recurrence fields is enough and leaves past
			// occurrences alone
			err := outcome.run(StepUpdateSeries, func() error {
				return p.store.UpdateSeries(ctx, rule.ID, next)
			})
			return outcome, err
		}

		err := outcome.run(StepDeleteSeries, func() error {
			return p.store.DeleteSeries(ctx, rule.ID)
		})
		if err != nil {
			return outcome, err
		}

		// recreate with the new pattern from the series' original start
		create := next
		recurring := *next.Recurring
		recurring.StartDate = rule.StartDate
		create.Recurring = &recurring

		err = outcome.run(StepCreate, func() error {
			event, err := p.store.CreateEvent(ctx, create)
			outcome.Event = event
			return err
		})
		return outcome, err

	case "":
		return outcome, ErrStrategyRequired
	default:
		return outcome, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
