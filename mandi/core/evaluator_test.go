package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandiops.com/mandiops/utils"
)

// fakeRepo is an in-memory EvidenceRepository. Counts are keyed per scope,
// individual kinds or whole scopes can be made to fail, and kinds can be
// made slow to exercise the query timeout.
type fakeRepo struct {
	mu      sync.Mutex
	counts  map[string]map[TaskKind]int
	fail    map[TaskKind]error
	failFor string
	slow    map[TaskKind]time.Duration
	punches map[string]PunchTimes
	calls   int
}

func scopeKey(s Scope) string {
	if s.WorkerID != "" {
		return "w:" + s.WorkerID
	}
	return "m:" + s.MarketID
}

func (f *fakeRepo) Count(ctx context.Context, scope Scope, date time.Time, kind TaskKind) (int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if d, ok := f.slow[kind]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if err, ok := f.fail[kind]; ok {
		return 0, err
	}
	key := scopeKey(scope)
	if key == f.failFor {
		return 0, errors.New("store offline")
	}
	return f.counts[key][kind], nil
}

func (f *fakeRepo) PunchTimes(ctx context.Context, workerID string, date time.Time) (PunchTimes, error) {
	return f.punches[workerID], nil
}

// fullEmployeeEvidence covers every non-punch evidence source once.
func fullEmployeeEvidence() map[TaskKind]int {
	return map[TaskKind]int{
		TaskStallConfirmation:       4,
		TaskOutsideRatesMedia:       1,
		TaskRateBoardMedia:          1,
		TaskMarketVideo:             1,
		TaskCleaningVideo:           1,
		TaskCustomerFeedbackMedia:   2,
		TaskTodaysOffers:            6,
		TaskNonAvailableCommodities: 3,
		TaskStallInspection:         2,
		TaskCashCollection:          5,
		TaskOrganiserFeedback:       1,
		TaskNextDayPlanning:         0,
	}
}

func testEvaluator(repo *fakeRepo) *Evaluator {
	return NewEvaluator(repo, NewScheduleGate(time.Monday))
}

func TestEvaluateWorkerDay(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, utils.ReportingTZ) // Tuesday
	noon := date.Add(12 * time.Hour)
	punches := PunchTimes{
		In:  utils.Ptr(date.Add(9 * time.Hour)),
		Out: utils.Ptr(date.Add(18 * time.Hour)),
	}

	t.Run("Everything done at noon", func(t *testing.T) {
		repo := &fakeRepo{
			counts:  map[string]map[TaskKind]int{"w:w1": fullEmployeeEvidence()},
			punches: map[string]PunchTimes{"w1": punches},
		}

		res, err := testEvaluator(repo).EvaluateWorkerDay(context.Background(), "w1", RoleEmployee, date, noon)
		require.NoError(t, err)

		assert.Equal(t, StatusCompleted, res.Status)
		assert.Equal(t, 13, res.CompletedCount)
		assert.Equal(t, 13, res.TotalCount)
		assert.Empty(t, res.Warnings)
	})

	t.Run("Ten of thirteen just past midnight expires", func(t *testing.T) {
		evidence := fullEmployeeEvidence()
		delete(evidence, TaskMarketVideo)
		delete(evidence, TaskCleaningVideo)
		delete(evidence, TaskStallInspection)
		repo := &fakeRepo{
			counts:  map[string]map[TaskKind]int{"w:w1": evidence},
			punches: map[string]PunchTimes{"w1": punches},
		}

		now := date.AddDate(0, 0, 1).Add(time.Second)
		res, err := testEvaluator(repo).EvaluateWorkerDay(context.Background(), "w1", RoleEmployee, date, now)
		require.NoError(t, err)

		assert.Equal(t, StatusIncompleteExpire, res.Status)
		assert.Equal(t, 10, res.CompletedCount)
	})

	t.Run("Nothing done is active and not started", func(t *testing.T) {
		repo := &fakeRepo{}

		res, err := testEvaluator(repo).EvaluateWorkerDay(context.Background(), "w1", RoleEmployee, date, noon)
		require.NoError(t, err)

		assert.Equal(t, StatusActive, res.Status)
		assert.True(t, res.NotStarted)
		assert.Equal(t, 0, res.CompletedCount)
		assert.Equal(t, 13, res.TotalCount)
	})

	t.Run("Now before the date is rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		_, err := testEvaluator(repo).EvaluateWorkerDay(context.Background(), "w1", RoleEmployee, date, date.Add(-time.Minute))
		assert.ErrorIs(t, err, ErrNowBeforeDate)
		assert.Zero(t, repo.calls, "no evidence query should run for an invalid now")
	})
}

func TestEvaluateVector(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, utils.ReportingTZ)

	t.Run("Vector order matches checklist order", func(t *testing.T) {
		repo := &fakeRepo{counts: map[string]map[TaskKind]int{"w:w1": fullEmployeeEvidence()}}

		vector, _, _, err := testEvaluator(repo).Evaluate(context.Background(), "w1", RoleEmployee, date)
		require.NoError(t, err)

		checklist, _ := ChecklistFor(RoleEmployee)
		require.Len(t, vector.Tasks, len(checklist))
		for i, slot := range checklist {
			assert.Equal(t, slot, vector.Tasks[i].Kind)
		}
	})

	t.Run("Idempotent for unchanged evidence", func(t *testing.T) {
		repo := &fakeRepo{
			counts: map[string]map[TaskKind]int{"w:w1": fullEmployeeEvidence()},
			fail:   map[TaskKind]error{TaskMarketVideo: errors.New("timeout")},
		}
		eval := testEvaluator(repo)

		first, _, firstWarnings, err := eval.Evaluate(context.Background(), "w1", RoleEmployee, date)
		require.NoError(t, err)
		second, _, secondWarnings, err := eval.Evaluate(context.Background(), "w1", RoleEmployee, date)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstWarnings, secondWarnings)
	})

	t.Run("Feedback and planning share one slot", func(t *testing.T) {
		find := func(v CompletionVector) TaskResult {
			task := utils.Find(v.Tasks, func(task TaskResult) bool { return task.Kind == TaskFeedbackOrPlanning })
			require.NotNil(t, task)
			return *task
		}

		t.Run("Planning alone satisfies it", func(t *testing.T) {
			repo := &fakeRepo{counts: map[string]map[TaskKind]int{"w:w1": {
				TaskOrganiserFeedback: 0,
				TaskNextDayPlanning:   3,
			}}}
			vector, _, _, err := testEvaluator(repo).Evaluate(context.Background(), "w1", RoleEmployee, date)
			require.NoError(t, err)

			slot := find(vector)
			assert.True(t, slot.Completed)
			assert.Equal(t, 3, slot.Count)
		})

		t.Run("Both empty leaves it incomplete", func(t *testing.T) {
			repo := &fakeRepo{}
			vector, _, _, err := testEvaluator(repo).Evaluate(context.Background(), "w1", RoleEmployee, date)
			require.NoError(t, err)

			slot := find(vector)
			assert.False(t, slot.Completed)
			assert.Zero(t, slot.Count)
		})
	})

	t.Run("One failing source degrades to zero with a warning", func(t *testing.T) {
		repo := &fakeRepo{
			counts: map[string]map[TaskKind]int{"w:w1": fullEmployeeEvidence()},
			fail:   map[TaskKind]error{TaskRateBoardMedia: errors.New("connection refused")},
		}

		vector, _, warnings, err := testEvaluator(repo).Evaluate(context.Background(), "w1", RoleEmployee, date)
		require.NoError(t, err)

		require.Len(t, warnings, 1)
		assert.Equal(t, TaskRateBoardMedia, warnings[0].Kind)

		for _, task := range vector.Tasks {
			switch task.Kind {
			case TaskRateBoardMedia:
				assert.False(t, task.Completed)
				assert.Zero(t, task.Count)
			case TaskPunchIn, TaskPunchOut:
				// no punches in this fixture
			default:
				assert.True(t, task.Completed, string(task.Kind))
			}
		}
		assert.Equal(t, 10, vector.CompletedCount)
	})

	t.Run("Slow source hits the query timeout, others unaffected", func(t *testing.T) {
		repo := &fakeRepo{
			counts: map[string]map[TaskKind]int{"w:w1": fullEmployeeEvidence()},
			slow:   map[TaskKind]time.Duration{TaskCleaningVideo: 500 * time.Millisecond},
		}
		eval := testEvaluator(repo)
		eval.QueryTimeout = 20 * time.Millisecond

		vector, _, warnings, err := eval.Evaluate(context.Background(), "w1", RoleEmployee, date)
		require.NoError(t, err)

		require.Len(t, warnings, 1)
		assert.Equal(t, TaskCleaningVideo, warnings[0].Kind)
		assert.Equal(t, 10, vector.CompletedCount)
	})

	t.Run("Closed weekday needs only the plan", func(t *testing.T) {
		monday := time.Date(2025, 10, 13, 0, 0, 0, 0, utils.ReportingTZ)
		repo := &fakeRepo{counts: map[string]map[TaskKind]int{"w:w1": {TaskNextDayPlanning: 1}}}

		vector, _, _, err := testEvaluator(repo).Evaluate(context.Background(), "w1", RoleEmployee, monday)
		require.NoError(t, err)

		assert.Equal(t, 1, vector.TotalCount)
		assert.Equal(t, 1, vector.CompletedCount)
	})
}
