package wizard

import (
	"context"
	"errors"
)

// ErrSubmitted is returned by a controller whose draft was already sent.
var ErrSubmitted = errors.New("profile already submitted")

// Submitter hands a finished profile to the backend.
type Submitter interface {
	SubmitProfile(ctx context.Context, p Payload) error
}

// Outcome describes what a call to Next did.
type Outcome string

const (
	Advanced     Outcome = "advanced"
	Blocked      Outcome = "blocked"
	Submitted    Outcome = "submitted"
	SubmitFailed Outcome = "submit_failed"
)

// State is everything the controller needs to resume. It is what gets
// cached between requests.
type State struct {
	Step        Section `json:"step"`
	Draft       Draft   `json:"draft"`
	Errors      Errors  `json:"errors,omitempty"`
	Submitted   bool    `json:"submitted"`
	SubmitError string  `json:"submit_error,omitempty"`
}

// Controller walks a draft through the sections. Forward moves are gated
// by validation, backward moves are free. Only one goroutine may drive a
// controller at a time.
type Controller struct {
	state  State
	submit Submitter
}

// NewController starts at the first section with seed, or with a blank
// draft when seed is nil.
func NewController(seed *Draft, s Submitter) *Controller {
	d := NewDraft()
	if seed != nil {
		d = seed.Clone()
	}
	return &Controller{state: State{Step: SectionIdentity, Draft: d}, submit: s}
}

// Restore resumes a controller from a saved state.
func Restore(st State, s Submitter) *Controller {
	if !st.Step.Valid() {
		st.Step = SectionIdentity
	}
	st.Draft = st.Draft.Clone()
	return &Controller{state: st, submit: s}
}

func (c *Controller) State() State {
	st := c.state
	st.Draft = st.Draft.Clone()
	if st.Errors != nil {
		errs := make(Errors, len(st.Errors))
		for k, v := range st.Errors {
			errs[k] = v
		}
		st.Errors = errs
	}
	return st
}

func (c *Controller) Step() Section { return c.state.Step }
func (c *Controller) Draft() Draft { return c.state.Draft.Clone() }
func (c *Controller) Done() bool { return c.state.Submitted }

// Update replaces the draft with fn's result. A failing fn leaves the
// draft untouched.
func (c *Controller) Update(fn func(Draft) (Draft, error)) error {
	if c.state.Submitted {
		return ErrSubmitted
	}
	d, err := fn(c.state.Draft.Clone())
	if err != nil {
		return err
	}
	c.state.Draft = d
	return nil
}

// Next validates the current section and moves forward. On the last
// section it submits instead. A submit error is returned along with
// SubmitFailed and the controller stays on the last section.
func (c *Controller) Next(ctx context.Context) (Outcome, error) {
	if c.state.Submitted {
		return "", ErrSubmitted
	}

	if errs := Validate(c.state.Step, c.state.Draft); len(errs) > 0 {
		c.state.Errors = errs
		c.state.SubmitError = ""
		return Blocked, nil
	}
	c.state.Errors = nil

	if int(c.state.Step) < NumSections-1 {
		c.state.Step++
		return Advanced, nil
	}

	// Earlier sections may have been edited after they were passed.
	if s, bad := FirstInvalid(c.state.Draft); bad {
		c.state.Errors = Validate(s, c.state.Draft)
		c.state.SubmitError = ""
		return Blocked, nil
	}

	if err := c.submit.SubmitProfile(ctx, BuildPayload(c.state.Draft)); err != nil {
		c.state.SubmitError = err.Error()
		return SubmitFailed, err
	}

	c.state = State{Step: c.state.Step, Draft: NewDraft(), Submitted: true}
	return Submitted, nil
}

// Back moves to the previous section. It reports false at the first
// section and after submission.
func (c *Controller) Back() bool {
	if c.state.Submitted || c.state.Step == SectionIdentity {
		return false
	}
	c.state.Step--
	c.state.Errors = nil
	c.state.SubmitError = ""
	return true
}
