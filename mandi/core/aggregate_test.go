package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandiops.com/mandiops/utils"
)

type fakeDirectory struct {
	workers map[string][]WorkerRef
	markets []string
	err     error
}

func (f *fakeDirectory) WorkersForMarket(ctx context.Context, marketID string, date time.Time) ([]WorkerRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.workers[marketID], nil
}

func (f *fakeDirectory) ScheduledMarkets(ctx context.Context, date time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.markets, nil
}

func TestEvaluateMarket(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, utils.ReportingTZ) // Tuesday
	noon := date.Add(12 * time.Hour)
	punches := PunchTimes{
		In:  utils.Ptr(date.Add(9 * time.Hour)),
		Out: utils.Ptr(date.Add(18 * time.Hour)),
	}

	t.Run("Unscheduled date returns an empty rollup", func(t *testing.T) {
		monday := time.Date(2025, 10, 13, 0, 0, 0, 0, utils.ReportingTZ)
		repo := &fakeRepo{}
		dir := &fakeDirectory{workers: map[string][]WorkerRef{"m1": {{WorkerID: "w1", Role: RoleEmployee}}}}
		agg := NewAggregator(testEvaluator(repo), NewScheduleGate(time.Monday), dir)

		rollup, err := agg.EvaluateMarket(context.Background(), "m1", monday, monday.Add(12*time.Hour))
		require.NoError(t, err)

		assert.False(t, rollup.Scheduled)
		assert.Empty(t, rollup.Workers)
		assert.Empty(t, rollup.Totals)
		assert.Zero(t, repo.calls, "no evidence queries on an unscheduled date")
	})

	t.Run("One offline worker store does not sink the market", func(t *testing.T) {
		counts := make(map[string]map[TaskKind]int)
		punchMap := make(map[string]PunchTimes)
		var workers []WorkerRef
		for i := 1; i <= 10; i++ {
			id := fmt.Sprintf("w%d", i)
			counts["w:"+id] = fullEmployeeEvidence()
			punchMap[id] = punches
			workers = append(workers, WorkerRef{WorkerID: id, Role: RoleEmployee})
		}

		repo := &fakeRepo{counts: counts, punches: punchMap, failFor: "w:w5"}
		dir := &fakeDirectory{workers: map[string][]WorkerRef{"m1": workers}}
		agg := NewAggregator(testEvaluator(repo), NewScheduleGate(time.Monday), dir)

		rollup, err := agg.EvaluateMarket(context.Background(), "m1", date, noon)
		require.NoError(t, err)
		require.Len(t, rollup.Workers, 10)

		var degraded int
		for _, w := range rollup.Workers {
			assert.False(t, w.Failed)
			if len(w.Warnings) > 0 {
				degraded++
				assert.Equal(t, "w5", w.WorkerID)
				// punches still answered, every count degraded to zero
				assert.Equal(t, 2, w.CompletedCount)
				assert.Equal(t, StatusIncomplete, w.Status)
			} else {
				assert.Equal(t, StatusCompleted, w.Status)
			}
		}
		assert.Equal(t, 1, degraded)
	})

	t.Run("Worker order follows the directory", func(t *testing.T) {
		dir := &fakeDirectory{workers: map[string][]WorkerRef{"m1": {
			{WorkerID: "w2", Role: RoleEmployee},
			{WorkerID: "w1", Role: RoleBDO},
		}}}
		agg := NewAggregator(testEvaluator(&fakeRepo{}), NewScheduleGate(time.Monday), dir)

		rollup, err := agg.EvaluateMarket(context.Background(), "m1", date, noon)
		require.NoError(t, err)
		require.Len(t, rollup.Workers, 2)
		assert.Equal(t, "w2", rollup.Workers[0].WorkerID)
		assert.Equal(t, "w1", rollup.Workers[1].WorkerID)
		assert.Equal(t, 5, rollup.Workers[1].TotalCount)
	})

	t.Run("Market totals are market scoped", func(t *testing.T) {
		repo := &fakeRepo{counts: map[string]map[TaskKind]int{
			"m:m1": {
				TaskStallConfirmation: 42,
				TaskTodaysOffers:      17,
				TaskCashCollection:    9,
			},
		}}
		dir := &fakeDirectory{}
		agg := NewAggregator(testEvaluator(repo), NewScheduleGate(time.Monday), dir)

		rollup, err := agg.EvaluateMarket(context.Background(), "m1", date, noon)
		require.NoError(t, err)

		assert.Equal(t, 42, rollup.Totals[TaskStallConfirmation])
		assert.Equal(t, 17, rollup.Totals[TaskTodaysOffers])
		assert.Equal(t, 9, rollup.Totals[TaskCashCollection])
	})

	t.Run("Failing total becomes a rollup warning", func(t *testing.T) {
		repo := &fakeRepo{fail: map[TaskKind]error{TaskCashCollection: errors.New("timeout")}}
		dir := &fakeDirectory{}
		agg := NewAggregator(testEvaluator(repo), NewScheduleGate(time.Monday), dir)

		rollup, err := agg.EvaluateMarket(context.Background(), "m1", date, noon)
		require.NoError(t, err)

		require.Len(t, rollup.Warnings, 1)
		assert.Equal(t, TaskCashCollection, rollup.Warnings[0].Kind)
		_, present := rollup.Totals[TaskCashCollection]
		assert.False(t, present)
	})

	t.Run("Directory failure is fatal", func(t *testing.T) {
		dir := &fakeDirectory{err: errors.New("directory down")}
		agg := NewAggregator(testEvaluator(&fakeRepo{}), NewScheduleGate(time.Monday), dir)

		_, err := agg.EvaluateMarket(context.Background(), "m1", date, noon)
		assert.Error(t, err)
	})
}

func TestEvaluateScheduledMarkets(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, utils.ReportingTZ)
	noon := date.Add(12 * time.Hour)

	t.Run("All markets roll up in directory order", func(t *testing.T) {
		dir := &fakeDirectory{
			markets: []string{"m1", "m2", "m3"},
			workers: map[string][]WorkerRef{
				"m2": {{WorkerID: "w1", Role: RoleEmployee}},
			},
		}
		agg := NewAggregator(testEvaluator(&fakeRepo{}), NewScheduleGate(time.Monday), dir)

		rollups, err := agg.EvaluateScheduledMarkets(context.Background(), date, noon)
		require.NoError(t, err)
		require.Len(t, rollups, 3)
		assert.Equal(t, "m1", rollups[0].MarketID)
		assert.Equal(t, "m2", rollups[1].MarketID)
		assert.Len(t, rollups[1].Workers, 1)
	})

	t.Run("Closed weekday yields nothing", func(t *testing.T) {
		monday := time.Date(2025, 10, 13, 0, 0, 0, 0, utils.ReportingTZ)
		dir := &fakeDirectory{markets: []string{"m1"}}
		agg := NewAggregator(testEvaluator(&fakeRepo{}), NewScheduleGate(time.Monday), dir)

		rollups, err := agg.EvaluateScheduledMarkets(context.Background(), monday, monday.Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, rollups)
	})
}
