// Package endpoint implements the server side of the contact form: a
// stateless handler that validates a submission on its own terms and answers
// with a structured result.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/psyborgxoxo/SouravPortfolio/internal/config"
	"github.com/psyborgxoxo/SouravPortfolio/internal/contact"
)

const (
	Path = "/api/contact"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Outcomes reported to the Tracker.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Tracker receives one analytics event per processed submission.
type Tracker interface {
	Track(ctx context.Context, action, category, label, clientIP string)
}

type Handler struct {
	cfg      config.ContactConfig
	delivery Delivery
	tracker  Tracker
	logger   zerolog.Logger
	now      func() time.Time
}

// NewHandler wires a handler. tracker may be nil.
func NewHandler(cfg config.ContactConfig, delivery Delivery, tracker Tracker, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		delivery: delivery,
		tracker:  tracker,
		logger:   logger.With().Str("component", "contact").Logger(),
		now:      time.Now,
	}
}

// Register mounts the contact routes. limiter may be nil.
func (h *Handler) Register(r gin.IRouter, limiter *RateLimiter) {
	if limiter != nil {
		r.POST(Path, limiter.Middleware(), h.Submit)
	} else {
		r.POST(Path, h.Submit)
	}
	r.OPTIONS(Path, h.Options)
}

// Options answers a pre-flight request without touching the body.
func (h *Handler) Options(c *gin.Context) {
	c.Status(http.StatusOK)
}

// MethodNotAllowed is installed as the engine's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, contact.Failure{Error: "Method not allowed"})
}

func (h *Handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().Interface("panic", r).Msg("contact form error")
			h.internalError(c)
		}
	}()

	var fields contact.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		h.track(c, OutcomeRejected)
		c.JSON(http.StatusBadRequest, contact.Failure{
			Error:   "Invalid request body",
			Details: "Expected a JSON object with name, email, subject and message",
		})
		return
	}

	if fields.Name == "" || fields.Email == "" || fields.Message == "" {
		h.track(c, OutcomeRejected)
		c.JSON(http.StatusBadRequest, contact.Failure{
			Error:   "Missing required fields",
			Details: "Name, email, and message are required",
		})
		return
	}

	if !contact.ValidEmail(fields.Email) {
		h.track(c, OutcomeRejected)
		c.JSON(http.StatusBadRequest, contact.Failure{
			Error:   "Invalid email format",
			Details: "Please provide a valid email address",
		})
		return
	}

	receivedAt := h.now().UTC()
	subject := fields.Subject
	if subject == "" {
		subject = contact.DefaultSubject
	}
	h.logger.Info().
		Str("timestamp", receivedAt.Format(timestampLayout)).
		Str("from", fields.Email).
		Str("name", fields.Name).
		Str("subject", subject).
		Str("message", fields.Message).
		Str("user_agent", c.Request.UserAgent()).
		Str("ip", c.ClientIP()).
		Msg("contact form submission")

	h.simulateProcessing(ctx)

	sub := Submission{
		ID:         NewSubmissionID(receivedAt),
		Fields:     fields,
		ReceivedAt: receivedAt,
		UserAgent:  c.Request.UserAgent(),
		ClientIP:   c.ClientIP(),
	}
	if err := h.delivery.Deliver(ctx, sub); err != nil {
		h.logger.Error().Err(err).Str("submission_id", sub.ID).Msg("contact form error")
		h.internalError(c)
		return
	}

	h.track(c, OutcomeAccepted)
	c.JSON(http.StatusOK, contact.Result{
		Success:        true,
		Message:        contact.DefaultSuccessMessage,
		SubmissionID:   sub.ID,
		Timestamp:      h.now().UTC().Format(timestampLayout),
		NextSteps:      h.cfg.NextSteps,
		ContactOptions: h.cfg.Options,
	})
}

func (h *Handler) internalError(c *gin.Context) {
	h.track(c, OutcomeFailed)
	c.JSON(http.StatusInternalServerError, contact.Failure{
		Error:   "Internal server error",
		Message: "Sorry, there was an error sending your message. Please try again or contact me directly.",
		Fallback: &contact.Fallback{
			Email: h.cfg.FallbackEmail,
			Phone: h.cfg.FallbackPhone,
		},
	})
}

// simulateProcessing waits for the configured delay. It has no effect on the result.
func (h *Handler) simulateProcessing(ctx context.Context) {
	if h.cfg.ProcessingDelay <= 0 {
		return
	}
	t := time.NewTimer(h.cfg.ProcessingDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (h *Handler) track(c *gin.Context, outcome string) {
	if h.tracker != nil {
		h.tracker.Track(c.Request.Context(), "submit", "contact", outcome, c.ClientIP())
	}
}
