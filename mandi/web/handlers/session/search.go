package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mandi "mandiops.com/mandiops/mandi/core"
	"mandiops.com/mandiops/utils"
	web "mandiops.com/mandiops/web/common"
)

type MarketSearchDTO struct {
	Date web.DateOnly `json:"date"`
}

// SearchMarkets rolls up every market scheduled on the requested date (today
// when omitted). This backs the admin monitoring view.
func (ep *Endpoint) SearchMarkets(c *gin.Context) {
	var params MarketSearchDTO
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}
	date := params.Date.OrToday()

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	rollups, err := ep.aggregator(db).EvaluateScheduledMarkets(c.Request.Context(), date, utils.ReportingNow())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if rollups == nil {
		rollups = []*mandi.MarketRollup{}
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(rollups, int64(len(rollups))))
}
