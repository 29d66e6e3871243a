package contact

import (
	"context"
	"maps"
	"sync"
	"time"
)

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

const (
	DefaultSuccessMessage = "Message sent successfully!"
	DefaultFailureMessage = "Failed to send message. Please try again."
	NetworkErrorMessage   = "Network error. Please check your connection and try again."
)

// Transport delivers one submission to the endpoint. A non-nil error means
// no response was obtained.
type Transport interface {
	Send(ctx context.Context, fields Fields) (*Response, error)
}

// Observer is the presentation layer. It only reads what it is given.
type Observer interface {
	StateChanged(State)
	// Attention is called when a submit attempt fails local validation.
	Attention(ValidationErrors)
}

// State is a snapshot of the controller.
type State struct {
	Fields       Fields
	Errors       ValidationErrors
	Status       Status
	Message      string
	SubmissionID string
}

type Config struct {
	// Timeout bounds a single request. Zero means no timeout.
	Timeout        time.Duration
	SuccessMessage string
	FailureMessage string
	NetworkMessage string
}

func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		SuccessMessage: DefaultSuccessMessage,
		FailureMessage: DefaultFailureMessage,
		NetworkMessage: NetworkErrorMessage,
	}
}

// Controller owns the contact form state and drives submissions.
type Controller struct {
	transport Transport
	observer  Observer
	cfg       Config

	mu    sync.Mutex
	state State
}

// NewController returns a controller with empty fields. observer may be nil.
func NewController(transport Transport, observer Observer, cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.SuccessMessage == "" {
		cfg.SuccessMessage = def.SuccessMessage
	}
	if cfg.FailureMessage == "" {
		cfg.FailureMessage = def.FailureMessage
	}
	if cfg.NetworkMessage == "" {
		cfg.NetworkMessage = def.NetworkMessage
	}
	return &Controller{
		transport: transport,
		observer:  observer,
		cfg:       cfg,
		state:     State{Errors: ValidationErrors{}},
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// UpdateField sets a field and drops its validation error without revalidating.
func (c *Controller) UpdateField(field Field, value string) {
	c.mu.Lock()
	c.state.Fields.Set(field, value)
	delete(c.state.Errors, field)
	s := c.snapshot()
	c.mu.Unlock()

	c.notify(s)
}

func (c *Controller) Validate() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Fields.Validate()
}

// Submit validates the form and, when valid, sends it once. It returns the
// status the attempt ended in. Calling it while a request is in flight does
// nothing and returns StatusSubmitting.
func (c *Controller) Submit(ctx context.Context) Status {
	c.mu.Lock()
	if c.state.Status == StatusSubmitting {
		c.mu.Unlock()
		return StatusSubmitting
	}

	errs := c.state.Fields.Validate()
	c.state.Errors = errs
	if len(errs) > 0 {
		s := c.snapshot()
		c.mu.Unlock()

		c.notify(s)
		if c.observer != nil {
			c.observer.Attention(maps.Clone(errs))
		}
		return s.Status
	}

	c.state.Status = StatusSubmitting
	c.state.Message = ""
	c.state.SubmissionID = ""
	fields := c.state.Fields
	s := c.snapshot()
	c.mu.Unlock()
	c.notify(s)

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	resp, err := c.transport.Send(ctx, fields)

	c.mu.Lock()
	switch {
	case err != nil || resp == nil:
		c.state.Status = StatusError
		c.state.Message = c.cfg.NetworkMessage
	case resp.Accepted():
		c.state.Status = StatusSuccess
		c.state.Message = resp.Result.Message
		if c.state.Message == "" {
			c.state.Message = c.cfg.SuccessMessage
		}
		c.state.SubmissionID = resp.Result.SubmissionID
		c.state.Fields = Fields{}
	default:
		c.state.Status = StatusError
		c.state.Message = resp.FailureMessage()
		if c.state.Message == "" {
			c.state.Message = c.cfg.FailureMessage
		}
	}
	s = c.snapshot()
	c.mu.Unlock()

	c.notify(s)
	return s.Status
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() State {
	s := c.state
	s.Errors = maps.Clone(c.state.Errors)
	return s
}

func (c *Controller) notify(s State) {
	if c.observer != nil {
		c.observer.StateChanged(s)
	}
}
