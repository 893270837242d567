package html

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	parts "tillpoint/html/parts"
	catalogRepo "tillpoint/model/repository/catalog"
	locationRepo "tillpoint/model/repository/location"
)

func init() {
	api.RegisterHTMLModule(RegisterInventoryRoutes)
}

// RegisterInventoryRoutes serves the stock overview page.
func RegisterInventoryRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/inventory", func(c echo.Context) error {
		locations, err := locationRepo.NewLocationRepository(db).List()
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error fetching locations")
		}

		type locationStock struct {
			Name string
			Rows []map[string]interface{}
		}
		repo := catalogRepo.NewProductRepository(db)

		selected := uint(0)
		if raw := c.QueryParam("location_id"); raw != "" {
			if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
				selected = uint(parsed)
			}
		}

		sections := make([]locationStock, 0, len(locations))
		for _, loc := range locations {
			if selected != 0 && loc.LocationID != selected {
				continue
			}
			flat, err := repo.FetchFlatWithStock(loc.LocationID)
			if err != nil {
				return c.String(http.StatusInternalServerError, "Error fetching stock")
			}
			rows := make([]map[string]interface{}, 0, len(flat))
			for _, row := range flat {
				rows = append(rows, row)
			}
			sections = append(sections, locationStock{Name: loc.Name, Rows: rows})
		}

		css, _ := parts.GetCriticalCSS()
		return c.Render(http.StatusOK, "inventory.html", map[string]interface{}{
			"Locations": locations,
			"Sections":  sections,
			"CSS":       css,
		})
	})
}
