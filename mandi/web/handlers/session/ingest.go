package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mandiops.com/mandiops/mandi/model"
	"mandiops.com/mandiops/utils"
	web "mandiops.com/mandiops/web/common"
)

// Evidence ingest. These are the only writes this application owns: workers
// record their own rows, the engine only ever reads them back. A worker-day
// needs no explicit creation; its first row brings it into existence.

type PunchDTO struct {
	WorkerID  string            `json:"workerId" binding:"required"`
	MarketID  *string           `json:"marketId"`
	Date      web.DateOnly      `json:"date"`
	Kind      string            `json:"kind" binding:"required,oneof=in out"`
	Timestamp web.LocalDateTime `json:"timestamp"`
	DeviceID  string            `json:"deviceId"`
}

func (ep *Endpoint) SavePunch(c *gin.Context) {
	var dto PunchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	ts := dto.Timestamp.Time
	if ts.IsZero() {
		ts = utils.ReportingNow()
	}

	punch := model.AttendancePunch{
		ID:        uuid.NewString(),
		WorkerID:  dto.WorkerID,
		MarketID:  dto.MarketID,
		Date:      dto.Date.OrToday().Format("2006-01-02"),
		Kind:      dto.Kind,
		Timestamp: ts,
		DeviceID:  dto.DeviceID,
	}

	ep.save(c, &punch, gin.H{"id": punch.ID})
}

type ConfirmationDTO struct {
	WorkerID  string       `json:"workerId" binding:"required"`
	MarketID  *string      `json:"marketId"`
	Date      web.DateOnly `json:"date"`
	StallID   string       `json:"stallId" binding:"required"`
	Confirmed *bool        `json:"confirmed" binding:"required"`
}

func (ep *Endpoint) SaveConfirmation(c *gin.Context) {
	var dto ConfirmationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	row := model.StallConfirmation{
		ID:        uuid.NewString(),
		WorkerID:  dto.WorkerID,
		MarketID:  dto.MarketID,
		Date:      dto.Date.OrToday().Format("2006-01-02"),
		StallID:   dto.StallID,
		Confirmed: *dto.Confirmed,
	}

	ep.save(c, &row, gin.H{"id": row.ID})
}

type OfferDTO struct {
	WorkerID  string       `json:"workerId" binding:"required"`
	MarketID  *string      `json:"marketId"`
	Date      web.DateOnly `json:"date"`
	Commodity string       `json:"commodity" binding:"required"`
	Price     float64      `json:"price" binding:"required,min=0"`
	Unit      string       `json:"unit"`
}

func (ep *Endpoint) SaveOffer(c *gin.Context) {
	var dto OfferDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	row := model.TodaysOffer{
		ID:        uuid.NewString(),
		WorkerID:  dto.WorkerID,
		MarketID:  dto.MarketID,
		Date:      dto.Date.OrToday().Format("2006-01-02"),
		Commodity: dto.Commodity,
		Price:     dto.Price,
		Unit:      dto.Unit,
	}

	ep.save(c, &row, gin.H{"id": row.ID})
}

type MediaDTO struct {
	WorkerID  string       `json:"workerId" binding:"required"`
	MarketID  *string      `json:"marketId"`
	Date      web.DateOnly `json:"date"`
	Kind      string       `json:"kind" binding:"required,oneof=outside_rates rate_board market_video cleaning_video customer_feedback inspection"`
	ObjectKey string       `json:"objectKey" binding:"required"`
}

// SaveMedia records upload metadata only; the bytes themselves are handled
// by the host's storage pipeline.
func (ep *Endpoint) SaveMedia(c *gin.Context) {
	var dto MediaDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	row := model.MediaUpload{
		ID:        uuid.NewString(),
		WorkerID:  dto.WorkerID,
		MarketID:  dto.MarketID,
		Date:      dto.Date.OrToday().Format("2006-01-02"),
		Kind:      dto.Kind,
		ObjectKey: dto.ObjectKey,
	}

	ep.save(c, &row, gin.H{"id": row.ID})
}

type PlanDTO struct {
	WorkerID     string       `json:"workerId" binding:"required"`
	MarketID     *string      `json:"marketId"`
	Date         web.DateOnly `json:"date"`
	PlanDate     web.DateOnly `json:"planDate" binding:"required"`
	PlanMarketID *string      `json:"planMarketId"`
	Notes        string       `json:"notes"`
}

func (ep *Endpoint) SavePlan(c *gin.Context) {
	var dto PlanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	row := model.NextDayPlan{
		ID:           uuid.NewString(),
		WorkerID:     dto.WorkerID,
		MarketID:     dto.MarketID,
		Date:         dto.Date.OrToday().Format("2006-01-02"),
		PlanDate:     dto.PlanDate.Format("2006-01-02"),
		PlanMarketID: dto.PlanMarketID,
		Notes:        dto.Notes,
	}

	ep.save(c, &row, gin.H{"id": row.ID})
}

type FeedbackDTO struct {
	WorkerID string       `json:"workerId" binding:"required"`
	MarketID *string      `json:"marketId"`
	Date     web.DateOnly `json:"date"`
	Message  string       `json:"message" binding:"required"`
}

func (ep *Endpoint) SaveFeedback(c *gin.Context) {
	var dto FeedbackDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	row := model.OrganiserFeedback{
		ID:       uuid.NewString(),
		WorkerID: dto.WorkerID,
		MarketID: dto.MarketID,
		Date:     dto.Date.OrToday().Format("2006-01-02"),
		Message:  dto.Message,
	}

	ep.save(c, &row, gin.H{"id": row.ID})
}

func (ep *Endpoint) save(c *gin.Context, row interface{}, response gin.H) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	if err := db.WithContext(c.Request.Context()).Create(row).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			c.JSON(http.StatusConflict, web.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(response))
}
