package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/mandi/model"
	"mandiops.com/mandiops/utils"
)

// DirectoryStore resolves who reports where: workers assigned to a market,
// plus roaming workers (BDOs) who punched there on the day.
type DirectoryStore struct {
	db *gorm.DB
}

func NewDirectoryStore(db *gorm.DB) *DirectoryStore {
	return &DirectoryStore{db: db}
}

func (s *DirectoryStore) WorkersForMarket(ctx context.Context, marketID string, date time.Time) ([]core.WorkerRef, error) {
	var assigned []model.Worker
	err := s.db.WithContext(ctx).
		Where("market_id = ? AND active = ?", marketID, true).
		Order("id").
		Find(&assigned).Error
	if err != nil {
		return nil, fmt.Errorf("fetch assigned workers: %w", err)
	}

	refs := make([]core.WorkerRef, 0, len(assigned))
	seen := make(map[string]bool, len(assigned))
	for _, w := range assigned {
		refs = append(refs, core.WorkerRef{WorkerID: w.ID, Role: core.Role(w.Role), Name: w.Name})
		seen[w.ID] = true
	}

	// roaming workers show up through their punches
	var punchedIDs []string
	err = s.db.WithContext(ctx).
		Model(&model.AttendancePunch{}).
		Distinct("worker_id").
		Where("market_id = ? AND date = ?", marketID, date.Format("2006-01-02")).
		Pluck("worker_id", &punchedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("fetch punched workers: %w", err)
	}

	extraIDs := utils.Filter(punchedIDs, func(id string) bool { return !seen[id] })
	if len(extraIDs) > 0 {
		var roaming []model.Worker
		err = s.db.WithContext(ctx).
			Where("id IN ? AND active = ?", extraIDs, true).
			Order("id").
			Find(&roaming).Error
		if err != nil {
			return nil, fmt.Errorf("fetch roaming workers: %w", err)
		}
		for _, w := range roaming {
			refs = append(refs, core.WorkerRef{WorkerID: w.ID, Role: core.Role(w.Role), Name: w.Name})
		}
	}

	return refs, nil
}

func (s *DirectoryStore) ScheduledMarkets(ctx context.Context, date time.Time) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&model.MarketSchedule{}).
		Distinct("mandi_market_schedules.market_id").
		Joins("JOIN mandi_markets ON mandi_markets.id = mandi_market_schedules.market_id").
		Where("mandi_market_schedules.weekday = ? AND mandi_markets.active = ?", int(date.Weekday()), true).
		Order("mandi_market_schedules.market_id").
		Pluck("mandi_market_schedules.market_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("fetch scheduled markets: %w", err)
	}
	return ids, nil
}

// RoleFor is the read-only (workerId) -> role lookup consumed by handlers.
// Authentication itself lives outside this application.
func (s *DirectoryStore) RoleFor(ctx context.Context, workerID string) (core.Role, error) {
	var w model.Worker
	if err := s.db.WithContext(ctx).First(&w, "id = ?", workerID).Error; err != nil {
		return "", fmt.Errorf("worker not found: %w", err)
	}
	return core.Role(w.Role), nil
}
