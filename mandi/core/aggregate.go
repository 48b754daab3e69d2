package core

import (
	"context"
	"sync"
	"time"
)

// WorkerRef identifies one worker owing a report at a market.
type WorkerRef struct {
	WorkerID string `json:"workerId"`
	Role     Role   `json:"role"`
	Name     string `json:"name,omitempty"`
}

// WorkerDirectory is the host-side lookup of who reports where. Role storage
// and authentication live outside this core.
type WorkerDirectory interface {
	WorkersForMarket(ctx context.Context, marketID string, date time.Time) ([]WorkerRef, error)
	ScheduledMarkets(ctx context.Context, date time.Time) ([]string, error)
}

// WorkerSummary is one worker's rollup line. Failed marks a worker whose
// evaluation could not run at all; the rest of the market still renders.
type WorkerSummary struct {
	WorkerID       string        `json:"workerId"`
	Name           string        `json:"name,omitempty"`
	Role           Role          `json:"role"`
	Status         SessionStatus `json:"status,omitempty"`
	NotStarted     bool          `json:"notStarted,omitempty"`
	CompletedCount int           `json:"completedCount"`
	TotalCount     int           `json:"totalCount"`
	Failed         bool          `json:"failed,omitempty"`
	Error          string        `json:"error,omitempty"`
	Warnings       []Warning     `json:"warnings,omitempty"`
}

// MarketRollup aggregates one market's workers for one date, plus
// market-wide evidence totals that are independent of which worker logged
// them. Always rebuilt from current evidence, never persisted.
type MarketRollup struct {
	MarketID  string           `json:"marketId"`
	Date      string           `json:"date"`
	Scheduled bool             `json:"scheduled"`
	Workers   []WorkerSummary  `json:"workers"`
	Totals    map[TaskKind]int `json:"totals,omitempty"`
	Warnings  []Warning        `json:"warnings,omitempty"`
}

// marketTotalKinds are the operational counters shown per market on the
// monitoring dashboard.
var marketTotalKinds = []TaskKind{
	TaskStallConfirmation,
	TaskTodaysOffers,
	TaskCashCollection,
}

// Aggregator fans the evaluator out over every worker of a market, and over
// every scheduled market of a day.
type Aggregator struct {
	Evaluator *Evaluator
	Gate      *ScheduleGate
	Directory WorkerDirectory
}

func NewAggregator(eval *Evaluator, gate *ScheduleGate, dir WorkerDirectory) *Aggregator {
	return &Aggregator{Evaluator: eval, Gate: gate, Directory: dir}
}

// EvaluateMarket builds the rollup for one market+date. An unscheduled date
// yields an empty rollup, not an error. A single worker's failure flags that
// worker and leaves the others intact.
func (a *Aggregator) EvaluateMarket(ctx context.Context, marketID string, date, now time.Time) (*MarketRollup, error) {
	rollup := &MarketRollup{
		MarketID: marketID,
		Date:     DayStart(date).Format("2006-01-02"),
	}

	if !a.Gate.IsScheduled(date) {
		return rollup, nil
	}
	rollup.Scheduled = true

	workers, err := a.Directory.WorkersForMarket(ctx, marketID, date)
	if err != nil {
		return nil, err
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	summaries := make([]WorkerSummary, len(workers))
	for i, w := range workers {
		wg.Add(1)
		go func(i int, w WorkerRef) {
			defer wg.Done()
			summary := WorkerSummary{WorkerID: w.WorkerID, Name: w.Name, Role: w.Role}

			res, err := a.Evaluator.EvaluateWorkerDay(ctx, w.WorkerID, w.Role, date, now)
			if err != nil {
				summary.Failed = true
				summary.Error = err.Error()
			} else {
				summary.Status = res.Status
				summary.NotStarted = res.NotStarted
				summary.CompletedCount = res.CompletedCount
				summary.TotalCount = res.TotalCount
				summary.Warnings = res.Warnings
			}
			summaries[i] = summary
		}(i, w)
	}

	totals := make(map[TaskKind]int, len(marketTotalKinds))
	for _, kind := range marketTotalKinds {
		wg.Add(1)
		go func(kind TaskKind) {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, a.Evaluator.timeout())
			defer cancel()

			n, err := a.Evaluator.Repo.Count(qctx, MarketScope(marketID), date, kind)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rollup.Warnings = append(rollup.Warnings, Warning{Kind: kind, Message: "market total unavailable: " + err.Error()})
				return
			}
			totals[kind] = n
		}(kind)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rollup.Workers = summaries
	rollup.Totals = totals
	return rollup, nil
}

// EvaluateScheduledMarkets rolls up every market scheduled for the date's
// weekday, each market in parallel.
func (a *Aggregator) EvaluateScheduledMarkets(ctx context.Context, date, now time.Time) ([]*MarketRollup, error) {
	if !a.Gate.IsScheduled(date) {
		return nil, nil
	}

	marketIDs, err := a.Directory.ScheduledMarkets(ctx, date)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	rollups := make([]*MarketRollup, len(marketIDs))
	for i, id := range marketIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			rollup, err := a.EvaluateMarket(ctx, id, date, now)
			if err != nil {
				rollup = &MarketRollup{
					MarketID:  id,
					Date:      DayStart(date).Format("2006-01-02"),
					Scheduled: true,
					Warnings:  []Warning{{Message: "rollup failed: " + err.Error()}},
				}
			}
			rollups[i] = rollup
		}(i, id)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rollups, nil
}
