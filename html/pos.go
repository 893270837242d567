package html

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	"tillpoint/config"
	parts "tillpoint/html/parts"
	catalogRepo "tillpoint/model/repository/catalog"
	locationRepo "tillpoint/model/repository/location"
)

func init() {
	api.RegisterHTMLModule(RegisterPOSRoutes)
}

// RegisterPOSRoutes serves the point of sale terminal page.
func RegisterPOSRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/", func(c echo.Context) error {
		locations, err := locationRepo.NewLocationRepository(db).List()
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error fetching locations")
		}

		selected := uint(0)
		if raw := c.QueryParam("location_id"); raw != "" {
			if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
				selected = uint(parsed)
			}
		}
		if selected == 0 {
			warehouse, err := locationRepo.NewLocationRepository(db).FindByName(config.AppConfig.DefaultWarehouse)
			if err == nil {
				selected = warehouse.LocationID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return c.String(http.StatusInternalServerError, "Error fetching warehouse")
			} else if len(locations) > 0 {
				selected = locations[0].LocationID
			}
		}

		flat, err := catalogRepo.NewProductRepository(db).FetchFlatWithStock(selected)
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error fetching stock")
		}
		rows := make([]map[string]interface{}, 0, len(flat))
		for _, row := range flat {
			rows = append(rows, row)
		}

		css, _ := parts.GetCriticalCSS()
		return c.Render(http.StatusOK, "pos.html", map[string]interface{}{
			"Locations":  locations,
			"LocationID": selected,
			"Rows":       rows,
			"CSS":        css,
		})
	})
}
