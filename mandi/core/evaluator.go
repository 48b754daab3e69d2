package core

import (
	"context"
	"sort"
	"sync"
	"time"
)

// TaskResult is one checklist slot with its evidence outcome.
type TaskResult struct {
	Kind      TaskKind `json:"kind"`
	Label     string   `json:"label"`
	Completed bool     `json:"completed"`
	Count     int      `json:"count"`
}

// CompletionVector is the full per-slot breakdown for one worker-day, in
// checklist order.
type CompletionVector struct {
	Tasks          []TaskResult `json:"tasks"`
	CompletedCount int          `json:"completedCount"`
	TotalCount     int          `json:"totalCount"`
}

// WorkerDayResult is the caller-facing evaluation of one worker-day.
type WorkerDayResult struct {
	WorkerID       string        `json:"workerId"`
	Role           Role          `json:"role"`
	Date           string        `json:"date"`
	Status         SessionStatus `json:"status"`
	NotStarted     bool          `json:"notStarted"`
	CompletedCount int           `json:"completedCount"`
	TotalCount     int           `json:"totalCount"`
	Tasks          []TaskResult  `json:"tasks"`
	Punch          PunchTimes    `json:"punch"`
	Warnings       []Warning     `json:"warnings,omitempty"`
}

const DefaultQueryTimeout = 5 * time.Second

// Evaluator turns scattered evidence rows into a completion vector. Every
// evidence source is queried concurrently: a worker-day touches up to ~18
// unrelated stores and sequential reads would make market monitoring
// unusable.
type Evaluator struct {
	Repo         EvidenceRepository
	Gate         *ScheduleGate
	QueryTimeout time.Duration
}

func NewEvaluator(repo EvidenceRepository, gate *ScheduleGate) *Evaluator {
	return &Evaluator{Repo: repo, Gate: gate, QueryTimeout: DefaultQueryTimeout}
}

func (e *Evaluator) timeout() time.Duration {
	if e.QueryTimeout > 0 {
		return e.QueryTimeout
	}
	return DefaultQueryTimeout
}

// evidenceKinds lists the distinct sources a checklist needs. The merged
// feedback/planning slot expands to both of its underlying sources; punch
// slots come from PunchTimes, not a count query.
func evidenceKinds(checklist []TaskKind) []TaskKind {
	var kinds []TaskKind
	for _, slot := range checklist {
		switch slot {
		case TaskPunchIn, TaskPunchOut:
		case TaskFeedbackOrPlanning:
			kinds = append(kinds, TaskOrganiserFeedback, TaskNextDayPlanning)
		default:
			kinds = append(kinds, slot)
		}
	}
	return kinds
}

// Evaluate fetches all evidence for one worker-day and maps it onto the
// role's checklist. Source failures degrade to zero counts plus warnings;
// the vector is always returned. Calling twice with unchanged evidence
// yields an identical vector.
func (e *Evaluator) Evaluate(ctx context.Context, workerID string, role Role, date time.Time) (CompletionVector, PunchTimes, []Warning, error) {
	checklist, warnings := e.Gate.ChecklistFor(role, date)
	kinds := evidenceKinds(checklist)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		counts = make(map[TaskKind]int, len(kinds))
		punch  PunchTimes
	)

	addWarning := func(kind TaskKind, err error) {
		mu.Lock()
		warnings = append(warnings, Warning{Kind: kind, Message: "evidence unavailable: " + err.Error()})
		mu.Unlock()
	}

	for _, kind := range kinds {
		wg.Add(1)
		go func(kind TaskKind) {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, e.timeout())
			defer cancel()

			n, err := e.Repo.Count(qctx, WorkerScope(workerID), date, kind)
			if err != nil {
				// fail open to zero: the worker must not be blocked from
				// seeing the rest of the checklist
				addWarning(kind, err)
				n = 0
			}
			mu.Lock()
			counts[kind] = n
			mu.Unlock()
		}(kind)
	}

	needsPunch := false
	for _, slot := range checklist {
		if slot == TaskPunchIn || slot == TaskPunchOut {
			needsPunch = true
			break
		}
	}
	if needsPunch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, e.timeout())
			defer cancel()

			p, err := e.Repo.PunchTimes(qctx, workerID, date)
			if err != nil {
				addWarning(TaskPunchIn, err)
				return
			}
			mu.Lock()
			punch = p
			mu.Unlock()
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return CompletionVector{}, PunchTimes{}, nil, err
	}

	vector := CompletionVector{Tasks: make([]TaskResult, 0, len(checklist)), TotalCount: len(checklist)}
	for _, slot := range checklist {
		res := TaskResult{Kind: slot, Label: Label(slot)}
		switch slot {
		case TaskPunchIn:
			res.Completed = punch.In != nil
			if res.Completed {
				res.Count = 1
			}
		case TaskPunchOut:
			res.Completed = punch.Out != nil
			if res.Completed {
				res.Count = 1
			}
		case TaskFeedbackOrPlanning:
			// either source satisfies the slot
			res.Count = counts[TaskOrganiserFeedback] + counts[TaskNextDayPlanning]
			res.Completed = res.Count > 0
		default:
			res.Count = counts[slot]
			res.Completed = res.Count > 0
		}
		if res.Completed {
			vector.CompletedCount++
		}
		vector.Tasks = append(vector.Tasks, res)
	}

	// warnings arrive in goroutine completion order; sort so repeated
	// evaluations of unchanged evidence are bit-identical
	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Kind != warnings[j].Kind {
			return warnings[i].Kind < warnings[j].Kind
		}
		return warnings[i].Message < warnings[j].Message
	})

	return vector, punch, warnings, nil
}

// EvaluateWorkerDay runs the full pipeline for one worker-day: evidence
// fan-out, completion vector, status derivation.
func (e *Evaluator) EvaluateWorkerDay(ctx context.Context, workerID string, role Role, date, now time.Time) (*WorkerDayResult, error) {
	if now.Before(DayStart(date)) {
		return nil, ErrNowBeforeDate
	}

	vector, punch, warnings, err := e.Evaluate(ctx, workerID, role, date)
	if err != nil {
		return nil, err
	}

	in := StatusInput{
		CompletedCount: vector.CompletedCount,
		TotalCount:     vector.TotalCount,
		PunchIn:        punch.In,
		PunchOut:       punch.Out,
		Date:           date,
		Now:            now,
	}
	status, err := ComputeStatus(in)
	if err != nil {
		return nil, err
	}

	return &WorkerDayResult{
		WorkerID:       workerID,
		Role:           role,
		Date:           DayStart(date).Format("2006-01-02"),
		Status:         status,
		NotStarted:     NotStarted(in),
		CompletedCount: vector.CompletedCount,
		TotalCount:     vector.TotalCount,
		Tasks:          vector.Tasks,
		Punch:          punch,
		Warnings:       warnings,
	}, nil
}
