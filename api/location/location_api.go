package location

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	locationEntity "tillpoint/model/entity/location"
	auditRepo "tillpoint/model/repository/audit"
	locationRepo "tillpoint/model/repository/location"
)

func init() {
	api.RegisterModule(RegisterLocationRoutes)
}

func RegisterLocationRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/locations")
	repo := locationRepo.NewLocationRepository(db)

	// GET /api/locations
	g.GET("", func(c echo.Context) error {
		locations, err := repo.List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, locations)
	})

	// GET /api/locations/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
		}
		location, err := repo.FindByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, location)
	})

	// POST /api/locations
	g.POST("", func(c echo.Context) error {
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "name is required"})
		}
		if _, err := repo.FindByName(body.Name); err == nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a location with this name already exists"})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		location := locationEntity.Location{Name: body.Name, Description: body.Description}
		if err := repo.Create(&location); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		auditRepo.NewAuditRepository(db).Record("location", "created", echo.Map{
			"location_id": location.LocationID,
			"name":        location.Name,
		})
		return c.JSON(http.StatusCreated, location)
	})

	// DELETE /api/locations/:id – blocked while stock levels reference it
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
		}
		if err := repo.Delete(uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
			}
			if errors.Is(err, locationRepo.ErrLocationReferenced) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		auditRepo.NewAuditRepository(db).Record("location", "deleted", echo.Map{"location_id": id})
		return c.NoContent(http.StatusNoContent)
	})
}
