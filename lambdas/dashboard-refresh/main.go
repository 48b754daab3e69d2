package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	"mandiops.com/mandiops/core"
	"mandiops.com/mandiops/infrastructure/devops"
	mandi "mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/mandi/store"
	"mandiops.com/mandiops/utils"
)

// Scheduled entrypoint: re-evaluates every market scheduled today so the
// monitoring dashboard stays warm. Evaluation is idempotent, so running it
// again after every change notification is safe.

type RefreshEvent struct {
	Date    string    `json:"date"` // YYYY-MM-DD, defaults to today (IST)
	Markets *[]string `json:"markets"`
}

type RefreshStats struct {
	Markets   int `json:"markets"`
	Workers   int `json:"workers"`
	Completed int `json:"completed"`
	Expired   int `json:"expired"`
	Warnings  int `json:"warnings"`
}

func HandleRequest(ctx context.Context, event RefreshEvent) (RefreshStats, error) {
	cfg, err := devops.LoadDeployment(ctx)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("load deployment config: %w", err)
	}

	date := utils.ReportingDate(time.Now())
	if event.Date != "" {
		date, err = time.ParseInLocation("2006-01-02", event.Date, utils.ReportingTZ)
		if err != nil {
			return RefreshStats{}, fmt.Errorf("invalid date: %w", err)
		}
	}

	closed, err := cfg.ClosedWeekdayValue()
	if err != nil {
		return RefreshStats{}, err
	}

	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	var stats RefreshStats
	err = dm.Exec(ctx, func(db *gorm.DB) error {
		gate := mandi.NewScheduleGate(closed)
		eval := mandi.NewEvaluator(store.NewEvidenceStore(db), gate)
		eval.QueryTimeout = cfg.QueryTimeout()
		agg := mandi.NewAggregator(eval, gate, store.NewDirectoryStore(db))

		now := utils.ReportingNow()

		var rollups []*mandi.MarketRollup
		if event.Markets != nil {
			for _, id := range *event.Markets {
				rollup, err := agg.EvaluateMarket(ctx, id, date, now)
				if err != nil {
					return err
				}
				rollups = append(rollups, rollup)
			}
		} else {
			var err error
			rollups, err = agg.EvaluateScheduledMarkets(ctx, date, now)
			if err != nil {
				return err
			}
		}

		for _, rollup := range rollups {
			stats.Markets++
			stats.Warnings += len(rollup.Warnings)
			for _, w := range rollup.Workers {
				stats.Workers++
				switch w.Status {
				case mandi.StatusCompleted:
					stats.Completed++
				case mandi.StatusIncompleteExpire:
					stats.Expired++
				}
				stats.Warnings += len(w.Warnings)
			}
			fmt.Printf("[INFO] market %s: %d workers, %d warnings\n",
				rollup.MarketID, len(rollup.Workers), len(rollup.Warnings))
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	fmt.Printf("[INFO] refreshed %d markets / %d workers for %s\n",
		stats.Markets, stats.Workers, date.Format("2006-01-02"))
	return stats, nil
}

func main() {
	lambda.Start(HandleRequest)
}
