package sales

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	salesRepo "tillpoint/model/repository/sales"
)

func init() {
	api.RegisterModule(RegisterSalesRoutes)
}

func RegisterSalesRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sales")
	repo := salesRepo.NewSalesRepository(db)

	// GET /api/sales?limit=N – newest first
	g.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		sales, err := repo.List(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, sales)
	})

	// GET /api/sales/:id – one sale with its line items
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
		}
		sale, err := repo.FindByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, sale)
	})
}
