package core

import (
	"errors"
	"time"

	"mandiops.com/mandiops/utils"
)

// SessionStatus is the derived classification of one worker-day. It is a
// view over punch timestamps and evidence counts, recomputed on every read;
// nothing stores it as a source of truth. Once the deadline has passed the
// computer only ever returns completed or incomplete_expired, so expiry is
// sticky by construction. Completed can in principle revert if evidence rows
// are deleted; deletions do not happen in normal operation.
type SessionStatus string

const (
	StatusActive           SessionStatus = "active"
	StatusCompleted        SessionStatus = "completed"
	StatusIncomplete       SessionStatus = "incomplete"
	StatusIncompleteExpire SessionStatus = "incomplete_expired"
)

// ErrNowBeforeDate rejects evaluating a reporting date that has not started
// yet in the reporting zone.
var ErrNowBeforeDate = errors.New("now precedes the reporting date")

// StatusInput is everything the state machine looks at. Now is caller
// supplied so the machine stays pure and testable.
type StatusInput struct {
	CompletedCount int
	TotalCount     int
	PunchIn        *time.Time
	PunchOut       *time.Time
	Date           time.Time // civil reporting date
	Now            time.Time
}

// DayStart returns midnight of the reporting date in the reporting zone.
func DayStart(date time.Time) time.Time {
	d := date.In(utils.ReportingTZ)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, utils.ReportingTZ)
}

// Deadline returns 23:59:59 of the reporting date in the reporting zone.
func Deadline(date time.Time) time.Time {
	d := date.In(utils.ReportingTZ)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, utils.ReportingTZ)
}

// ComputeStatus derives the session status for one worker-day.
//
//   - all tasks done -> completed, regardless of now
//   - past the deadline and not done -> incomplete_expired
//   - before the deadline, punched out but tasks missing -> incomplete
//   - otherwise -> active
func ComputeStatus(in StatusInput) (SessionStatus, error) {
	if in.Now.Before(DayStart(in.Date)) {
		return "", ErrNowBeforeDate
	}

	if in.TotalCount > 0 && in.CompletedCount >= in.TotalCount {
		return StatusCompleted, nil
	}

	if in.Now.After(Deadline(in.Date)) {
		return StatusIncompleteExpire, nil
	}

	if in.PunchOut != nil {
		return StatusIncomplete, nil
	}

	return StatusActive, nil
}

// NotStarted reports whether the worker has done nothing at all yet: no
// completed task and no punch-in. Dashboards show this as "not started"; it
// is a presentation flag on top of active, not a fifth status.
func NotStarted(in StatusInput) bool {
	return in.CompletedCount == 0 && in.PunchIn == nil
}
