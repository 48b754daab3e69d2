package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mandiops.com/mandiops/core"
	mandi "mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/mandi/store"
	common "mandiops.com/mandiops/mandi/web/common"
	"mandiops.com/mandiops/utils"
	web "mandiops.com/mandiops/web/common"
)

type Endpoint struct {
	base         common.Handler
	gate         *mandi.ScheduleGate
	queryTimeout time.Duration
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, gate *mandi.ScheduleGate, queryTimeout time.Duration) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, gate: gate, queryTimeout: queryTimeout}

	r.GET("/workers/:workerId/session", endpoint.WorkerSession)
	r.GET("/markets/:marketId/rollup", endpoint.MarketRollup)
	r.POST("/markets/search", endpoint.SearchMarkets)

	r.POST("/punches", endpoint.SavePunch)
	r.POST("/confirmations", endpoint.SaveConfirmation)
	r.POST("/offers", endpoint.SaveOffer)
	r.POST("/media", endpoint.SaveMedia)
	r.POST("/plans", endpoint.SavePlan)
	r.POST("/feedback", endpoint.SaveFeedback)
}

func (ep *Endpoint) evaluator(db *gorm.DB) *mandi.Evaluator {
	eval := mandi.NewEvaluator(store.NewEvidenceStore(db), ep.gate)
	if ep.queryTimeout > 0 {
		eval.QueryTimeout = ep.queryTimeout
	}
	return eval
}

func (ep *Endpoint) aggregator(db *gorm.DB) *mandi.Aggregator {
	return mandi.NewAggregator(ep.evaluator(db), ep.gate, store.NewDirectoryStore(db))
}

// queryDate resolves the optional ?date= query param, defaulting to today in
// the reporting zone.
func queryDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return utils.ReportingDate(time.Now()), true
	}
	t, err := time.ParseInLocation("2006-01-02", dateStr, utils.ReportingTZ)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid date, expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return t, true
}

// WorkerSession returns the worker's own dashboard: status, per-task
// breakdown, punch times.
func (ep *Endpoint) WorkerSession(c *gin.Context) {
	workerID := c.Param("workerId")
	date, ok := queryDate(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	role, err := store.NewDirectoryStore(db).RoleFor(ctx, workerID)
	if err != nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse(err.Error()))
		return
	}

	res, err := ep.evaluator(db).EvaluateWorkerDay(ctx, workerID, role, date, utils.ReportingNow())
	if err != nil {
		status := http.StatusInternalServerError
		if err == mandi.ErrNowBeforeDate {
			status = http.StatusBadRequest
		}
		c.JSON(status, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponseWithWarnings(res, mandi.WarningStrings(res.Warnings)))
}

// MarketRollup returns one market's live monitoring view.
func (ep *Endpoint) MarketRollup(c *gin.Context) {
	marketID := c.Param("marketId")
	date, ok := queryDate(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	rollup, err := ep.aggregator(db).EvaluateMarket(c.Request.Context(), marketID, date, utils.ReportingNow())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponseWithWarnings(rollup, mandi.WarningStrings(rollup.Warnings)))
}
