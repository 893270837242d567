package accounting

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	accountingService "tillpoint/service/accounting"
)

func init() {
	api.RegisterModule(RegisterAccountingRoutes)
}

func RegisterAccountingRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/accounting")

	// GET /api/accounting/summary – profit and loss rollup.
	// Accepts either from/to (RFC 3339 dates) or year/month; defaults to the
	// current calendar month.
	g.GET("/summary", func(c echo.Context) error {
		fromRaw, toRaw := c.QueryParam("from"), c.QueryParam("to")
		if fromRaw != "" || toRaw != "" {
			from, err := time.ParseInLocation("2006-01-02", fromRaw, time.Local)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
			}
			to, err := time.ParseInLocation("2006-01-02", toRaw, time.Local)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
			}
			if !to.After(from) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be after from"})
			}
			summary, err := accountingService.Summarize(db, from, to)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusOK, summary)
		}

		now := time.Now()
		year, month := now.Year(), now.Month()
		if raw := c.QueryParam("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
			}
			year = parsed
		}
		if raw := c.QueryParam("month"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 12 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be 1-12"})
			}
			month = time.Month(parsed)
		}

		summary, err := accountingService.SummarizeMonth(db, year, month)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, summary)
	})
}
