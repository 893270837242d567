package audit

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	auditRepo "tillpoint/model/repository/audit"
)

func init() {
	api.RegisterModule(RegisterAuditRoutes)
}

func RegisterAuditRoutes(apiGroup *echo.Group, db *gorm.DB) {
	// GET /api/audit?limit=N – recent operation log entries, newest first
	apiGroup.GET("/audit", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		entries, err := auditRepo.NewAuditRepository(db).List(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, entries)
	})
}
