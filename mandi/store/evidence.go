package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/mandi/model"
)

// EvidenceStore answers evidence counts from the relational store. Each task
// kind maps to its own table (or media kind); the evaluator treats every
// call as independent, so no query here depends on another.
type EvidenceStore struct {
	db *gorm.DB
}

func NewEvidenceStore(db *gorm.DB) *EvidenceStore {
	return &EvidenceStore{db: db}
}

var mediaKinds = map[core.TaskKind]string{
	core.TaskOutsideRatesMedia:     model.MediaOutsideRates,
	core.TaskRateBoardMedia:        model.MediaRateBoard,
	core.TaskMarketVideo:           model.MediaMarketVideo,
	core.TaskCleaningVideo:         model.MediaCleaningVideo,
	core.TaskCustomerFeedbackMedia: model.MediaCustomerFeedback,
}

func (s *EvidenceStore) Count(ctx context.Context, scope core.Scope, date time.Time, kind core.TaskKind) (int, error) {
	q := s.db.WithContext(ctx)

	if mediaKind, ok := mediaKinds[kind]; ok {
		q = q.Model(&model.MediaUpload{}).Where("kind = ?", mediaKind)
	} else {
		switch kind {
		case core.TaskStallConfirmation:
			q = q.Model(&model.StallConfirmation{}).Where("confirmed = ?", true)
		case core.TaskTodaysOffers:
			q = q.Model(&model.TodaysOffer{})
		case core.TaskNonAvailableCommodities:
			q = q.Model(&model.NonAvailableCommodity{})
		case core.TaskStallInspection:
			q = q.Model(&model.StallInspection{})
		case core.TaskCashCollection:
			q = q.Model(&model.CashCollection{})
		case core.TaskOrganiserFeedback:
			q = q.Model(&model.OrganiserFeedback{})
		case core.TaskNextDayPlanning:
			q = q.Model(&model.NextDayPlan{})
		default:
			return 0, fmt.Errorf("no evidence source for task kind %q", kind)
		}
	}

	q = q.Where("date = ?", date.Format("2006-01-02"))
	q = applyScope(q, scope)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return int(count), nil
}

func applyScope(q *gorm.DB, scope core.Scope) *gorm.DB {
	if scope.WorkerID != "" {
		return q.Where("worker_id = ?", scope.WorkerID)
	}
	return q.Where("market_id = ?", scope.MarketID)
}

// PunchTimes derives the attendance bounds for one worker-day: earliest
// punch-in, latest punch-out.
func (s *EvidenceStore) PunchTimes(ctx context.Context, workerID string, date time.Time) (core.PunchTimes, error) {
	var punches []model.AttendancePunch
	err := s.db.WithContext(ctx).
		Where("worker_id = ? AND date = ?", workerID, date.Format("2006-01-02")).
		Order("timestamp").
		Find(&punches).Error
	if err != nil {
		return core.PunchTimes{}, fmt.Errorf("fetch punches: %w", err)
	}

	var result core.PunchTimes
	for i := range punches {
		p := punches[i]
		switch p.Kind {
		case model.PunchKindIn:
			if result.In == nil {
				t := p.Timestamp
				result.In = &t
			}
		case model.PunchKindOut:
			t := p.Timestamp
			result.Out = &t
		}
	}
	return result, nil
}
