package core

import (
	"fmt"
	"time"
)

// ScheduleGate decides whether a market/date is reportable at all. One
// weekday per deployment has no market activity; on that day every role owes
// only the next-day plan.
type ScheduleGate struct {
	ClosedWeekday time.Weekday
}

func NewScheduleGate(closed time.Weekday) *ScheduleGate {
	return &ScheduleGate{ClosedWeekday: closed}
}

// IsScheduled reports whether markets operate on the given date.
func (g *ScheduleGate) IsScheduled(date time.Time) bool {
	return date.Weekday() != g.ClosedWeekday
}

// ChecklistFor resolves the effective checklist for a role on a date: the
// planning-day list on the closed weekday, the role list otherwise. An
// unknown role yields the employee checklist plus a warning.
func (g *ScheduleGate) ChecklistFor(role Role, date time.Time) ([]TaskKind, []Warning) {
	if !g.IsScheduled(date) {
		out := make([]TaskKind, len(planningDayChecklist))
		copy(out, planningDayChecklist)
		return out, nil
	}

	list, known := ChecklistFor(role)
	if !known {
		return list, []Warning{{Message: fmt.Sprintf("unknown role %q, using employee checklist", role)}}
	}
	return list, nil
}
