package checkout

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	auditRepo "tillpoint/model/repository/audit"
	checkoutService "tillpoint/service/checkout"
)

func init() {
	api.RegisterModule(RegisterCheckoutRoutes)
}

func RegisterCheckoutRoutes(apiGroup *echo.Group, db *gorm.DB) {
	// POST /api/checkout – finalize a cart as an atomic sale
	apiGroup.POST("/checkout", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			LocationID uint                       `json:"location_id"`
			Items      []checkoutService.CartLine `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		result, err := checkoutService.CreateSale(db, body.Items, body.LocationID)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(checkoutStatus(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		auditRepo.NewAuditRepository(db).Record("sale", "created", echo.Map{
			"sale_id":      result.SaleID,
			"location_id":  body.LocationID,
			"total_amount": result.TotalAmount,
			"line_count":   len(body.Items),
		})

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusCreated, echo.Map{
			"sale_id":             result.SaleID,
			"total_amount":        result.TotalAmount,
			"request_duration_ms": duration,
		})
	})
}

// checkoutStatus maps sale failures to HTTP codes. Stock contention is a
// conflict; bad carts are unprocessable; unknown references are not found.
func checkoutStatus(err error) int {
	var stockErr *checkoutService.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return http.StatusConflict
	case errors.Is(err, checkoutService.ErrEmptyCart),
		errors.Is(err, checkoutService.ErrInvalidQuantity),
		errors.Is(err, checkoutService.ErrInvalidPrice):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checkoutService.ErrLocationNotFound),
		errors.Is(err, checkoutService.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
