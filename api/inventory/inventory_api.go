package inventory

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"tillpoint/api"
	"tillpoint/config"
	"tillpoint/core/cache"
	auditRepo "tillpoint/model/repository/audit"
	catalogRepo "tillpoint/model/repository/catalog"
	inventoryRepo "tillpoint/model/repository/inventory"
	locationRepo "tillpoint/model/repository/location"
	inventoryService "tillpoint/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/inventory")

	// POST /api/inventory/receive – add stock for a product at a location
	g.POST("/receive", func(c echo.Context) error {
		start := time.Now()

		var in inventoryService.ReceiveInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		result, err := inventoryService.Receive(db, in)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(receiveStatus(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		auditRepo.NewAuditRepository(db).Record("stock_level", "received", echo.Map{
			"product_id":       in.ProductID,
			"location_id":      in.LocationID,
			"quantity_added":   in.QuantityToAdd,
			"updated_quantity": result.UpdatedQuantity,
		})

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"updated_quantity":    result.UpdatedQuantity,
			"request_duration_ms": duration,
		})
	})

	// GET /api/inventory/stock?location_id=N – stock levels at one location,
	// flattened with product fields for POS terminals. Cached per location.
	g.GET("/stock", func(c echo.Context) error {
		locationID, err := strconv.ParseUint(c.QueryParam("location_id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id query parameter is required"})
		}

		cacheKey := "stock:location:" + strconv.FormatUint(locationID, 10)
		if cached, ok := cache.GetInstance().Get(cacheKey); ok {
			return c.JSON(http.StatusOK, cached)
		}

		rows, err := catalogRepo.NewProductRepository(db).FetchFlatWithStock(uint(locationID))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		out := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			out = append(out, row)
		}

		cache.GetInstance().Set(cacheKey, out, 60, []string{"stock", "catalog"})
		return c.JSON(http.StatusOK, out)
	})

	// GET /api/inventory/stock/:product_id – per-location and total quantity
	// for one product. Location list and totals load concurrently.
	g.GET("/stock/:product_id", func(c echo.Context) error {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if _, err := catalogRepo.NewProductRepository(db).FindByID(uint(productID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		repo, err := inventoryRepo.NewInventoryRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		var (
			total     int
			locations map[uint]string
			levels    = map[uint]int{}
		)
		var eg errgroup.Group
		eg.Go(func() error {
			t, err := repo.GetTotalQuantityByProduct(uint(productID))
			if err != nil {
				return err
			}
			total = t
			return nil
		})
		eg.Go(func() error {
			list, err := locationRepo.NewLocationRepository(db).List()
			if err != nil {
				return err
			}
			locations = make(map[uint]string, len(list))
			for _, loc := range list {
				locations[loc.LocationID] = loc.Name
			}
			return nil
		})
		if err := eg.Wait(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		for locationID := range locations {
			if qty, ok := repo.GetQuantity(uint(productID), locationID); ok {
				levels[locationID] = qty
			}
		}
		byLocation := make([]echo.Map, 0, len(levels))
		for locationID, qty := range levels {
			byLocation = append(byLocation, echo.Map{
				"location_id": locationID,
				"location":    locations[locationID],
				"quantity":    qty,
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"product_id":     productID,
			"total_quantity": total,
			"by_location":    byLocation,
		})
	})

	// POST /api/inventory/import – CSV body of sku,quantity rows applied as
	// receipts. location_id query parameter defaults to the configured warehouse.
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		var locationID uint
		if raw := c.QueryParam("location_id"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
			}
			locationID = uint(parsed)
		} else {
			warehouse, err := locationRepo.NewLocationRepository(db).FindByName(config.AppConfig.DefaultWarehouse)
			if err != nil {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "default warehouse location not found"})
			}
			locationID = warehouse.LocationID
		}
		if _, err := locationRepo.NewLocationRepository(db).FindByID(locationID); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}

		batchSize, _ := strconv.Atoi(c.QueryParam("batch_size"))
		result, err := inventoryService.ImportStockCSV(db, c.Request().Body, inventoryService.ImportOptions{
			LocationID: locationID,
			BatchSize:  batchSize,
		})
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"total_rows":          result.TotalRows,
			"applied":             result.Applied,
			"skipped":             result.Skipped,
			"warnings":            result.Warnings,
			"request_duration_ms": duration,
		})
	})
}

func receiveStatus(err error) int {
	switch {
	case errors.Is(err, inventoryService.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, inventoryService.ErrProductNotFound),
		errors.Is(err, inventoryService.ErrLocationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
