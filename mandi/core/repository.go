package core

import (
	"context"
	"fmt"
	"time"

	"mandiops.com/mandiops/utils"
)

// Scope selects whose evidence a count query covers: a single worker's, or
// everything logged at a market regardless of worker.
type Scope struct {
	WorkerID string
	MarketID string
}

func WorkerScope(workerID string) Scope {
	return Scope{WorkerID: workerID}
}

func MarketScope(marketID string) Scope {
	return Scope{MarketID: marketID}
}

// PunchTimes are the attendance bounds of one worker-day. Either side may be
// missing; punch-out is just another checklist slot, not a gate.
type PunchTimes struct {
	In  *time.Time `json:"in"`
	Out *time.Time `json:"out"`
}

// EvidenceRepository answers "how many qualifying records exist" per task
// kind. Each kind lives in an unrelated store, so each call is independent
// and may fail independently. Callers treat a failed count as zero and carry
// on: a transient read failure must never block the rest of the evaluation.
type EvidenceRepository interface {
	Count(ctx context.Context, scope Scope, date time.Time, kind TaskKind) (int, error)
	PunchTimes(ctx context.Context, workerID string, date time.Time) (PunchTimes, error)
}

// Warning is a non-fatal problem attached to a result that was still
// produced. Dashboards render "11 of 13 complete, 2 sources unavailable"
// instead of an error page.
type Warning struct {
	Kind    TaskKind `json:"kind,omitempty"`
	Message string   `json:"message"`
}

func (w Warning) String() string {
	if w.Kind == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// WarningStrings flattens warnings for response envelopes.
func WarningStrings(warnings []Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	return utils.Map(warnings, func(w Warning) string { return w.String() })
}
