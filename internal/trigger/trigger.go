// Package trigger computes the instant at which an item's reminder fires.
package trigger

import (
	"errors"
	"time"

	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/models"
)

// ErrPastTrigger reports that the computed trigger instant is not in the
// future. It is a skip signal, not a failure: batch callers drop the item and
// single-item callers return success without scheduling anything.
var ErrPastTrigger = errors.New("trigger instant is in the past")

// Calculator computes reminder trigger instants. Now is the clock used for
// the past/future classification; it defaults to time.Now and is injectable
// for tests.
type Calculator struct {
	Now func() time.Time
}

// NewCalculator creates a Calculator backed by the wall clock.
func NewCalculator() *Calculator {
	return &Calculator{Now: time.Now}
}

// Compute derives the trigger instant for a deadline under the given
// configuration: the calendar date LeadDays whole days before the deadline's
// date, at Hour:Minute in the deadline's time zone. Calendar-aware day
// subtraction (AddDate) keeps the result correct across DST transitions.
//
// Returns an INVALID_DATE error for a zero deadline or out-of-range
// configuration, and ErrPastTrigger when the computed instant is not after
// the current clock reading.
func (c *Calculator) Compute(deadline time.Time, cfg models.NotificationConfig) (time.Time, error) {
	if deadline.IsZero() {
		return time.Time{}, apperrors.New(apperrors.ErrInvalidDate, "deadline must not be zero")
	}
	if err := cfg.Validate(); err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInvalidDate, "invalid notification config", err)
	}

	day := deadline.AddDate(0, 0, -cfg.LeadDays)
	instant := time.Date(day.Year(), day.Month(), day.Day(), cfg.Hour, cfg.Minute, 0, 0, day.Location())

	now := c.Now
	if now == nil {
		now = time.Now
	}
	if !instant.After(now()) {
		return time.Time{}, ErrPastTrigger
	}
	return instant, nil
}
