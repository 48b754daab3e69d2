package common

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mandiops.com/mandiops/core"
)

type Handler struct {
	Dm *core.DatabaseManager
}

func (h *Handler) GetDB(c *gin.Context) (*gorm.DB, *sql.Conn, error) {
	return h.Dm.GetDB(c.Request.Context())
}
