package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"mandiops.com/mandiops/core"
	mandi "mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/mandi/store"
	"mandiops.com/mandiops/utils"
)

// refresh re-evaluates market rollups over a date range and prints them.
// Useful after backfilling evidence or when checking a past day by hand.
func main() {
	startStr := flag.String("start", "", "First date to evaluate (YYYY-MM-DD). Defaults to today.")
	endStr := flag.String("end", "", "Last date to evaluate (YYYY-MM-DD). Defaults to start.")
	marketID := flag.String("market", "", "Evaluate a single market instead of all scheduled ones.")
	closedStr := flag.String("closed", "Monday", "Weekday markets stay shut.")
	flag.Parse()

	start := utils.ReportingDate(time.Now())
	if *startStr != "" {
		var err error
		start, err = time.ParseInLocation("2006-01-02", *startStr, utils.ReportingTZ)
		if err != nil {
			panic(fmt.Sprintf("Invalid start date: %v", err))
		}
	}
	end := start
	if *endStr != "" {
		var err error
		end, err = time.ParseInLocation("2006-01-02", *endStr, utils.ReportingTZ)
		if err != nil {
			panic(fmt.Sprintf("Invalid end date: %v", err))
		}
	}

	var closed time.Weekday
	found := false
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == *closedStr {
			closed = wd
			found = true
		}
	}
	if !found {
		panic(fmt.Sprintf("Invalid weekday: %s", *closedStr))
	}

	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/mandiops?parseTime=true"
	}
	db := core.ConnectDB(dsn)

	gate := mandi.NewScheduleGate(closed)
	eval := mandi.NewEvaluator(store.NewEvidenceStore(db), gate)
	agg := mandi.NewAggregator(eval, gate, store.NewDirectoryStore(db))

	ctx := context.Background()
	now := utils.ReportingNow()

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		fmt.Printf("Evaluating %s\n", d.Format("2006-01-02"))

		var rollups []*mandi.MarketRollup
		if *marketID != "" {
			rollup, err := agg.EvaluateMarket(ctx, *marketID, d, now)
			if err != nil {
				fmt.Printf("  error: %v\n", err)
				continue
			}
			rollups = append(rollups, rollup)
		} else {
			var err error
			rollups, err = agg.EvaluateScheduledMarkets(ctx, d, now)
			if err != nil {
				fmt.Printf("  error: %v\n", err)
				continue
			}
		}

		for _, rollup := range rollups {
			printRollup(rollup)
		}
	}
	fmt.Println("Done.")
}

func printRollup(rollup *mandi.MarketRollup) {
	if !rollup.Scheduled {
		fmt.Printf("  market %s: not scheduled\n", rollup.MarketID)
		return
	}

	byStatus := utils.GroupBy(rollup.Workers, func(w mandi.WorkerSummary) mandi.SessionStatus { return w.Status })
	fmt.Printf("  market %s: %d workers (completed=%d active=%d incomplete=%d expired=%d)\n",
		rollup.MarketID, len(rollup.Workers),
		len(byStatus[mandi.StatusCompleted]), len(byStatus[mandi.StatusActive]),
		len(byStatus[mandi.StatusIncomplete]), len(byStatus[mandi.StatusIncompleteExpire]))

	for _, warning := range rollup.Warnings {
		fmt.Printf("    warning: %s\n", warning)
	}
}
