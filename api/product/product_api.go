package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tillpoint/api"
	"tillpoint/config"
	"tillpoint/core/cache"
	catalogEntity "tillpoint/model/entity/catalog"
	auditRepo "tillpoint/model/repository/audit"
	catalogRepo "tillpoint/model/repository/catalog"
	catalogService "tillpoint/service/catalog"
)

const (
	listCacheKey = "product:list"
	listCacheTTL = 300
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/products")

	// GET /api/products – full catalog, served from cache when warm
	g.GET("", func(c echo.Context) error {
		if cached, ok := cache.GetInstance().Get(listCacheKey); ok {
			return c.JSON(http.StatusOK, cached)
		}
		if products, ok := listFromRedis(); ok {
			cache.GetInstance().Set(listCacheKey, products, listCacheTTL, []string{"catalog"})
			return c.JSON(http.StatusOK, products)
		}

		products, err := catalogRepo.NewProductRepository(db).List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		cache.GetInstance().Set(listCacheKey, products, listCacheTTL, []string{"catalog"})
		storeInRedis(products)
		return c.JSON(http.StatusOK, products)
	})

	// GET /api/products/search?q=term
	g.GET("/search", func(c echo.Context) error {
		query := c.QueryParam("q")
		if query == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q query parameter is required"})
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		products, err := catalogService.SearchProducts(db, query, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	// GET /api/products/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		product, err := catalogRepo.NewProductRepository(db).FindByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, product)
	})

	// POST /api/products – create, optionally with initial warehouse stock
	g.POST("", func(c echo.Context) error {
		start := time.Now()

		var in catalogService.ProductInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		product, err := catalogService.CreateProduct(db, in, config.AppConfig.DefaultWarehouse)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(catalogStatus(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		auditRepo.NewAuditRepository(db).Record("product", "created", echo.Map{
			"product_id": product.ProductID,
			"sku":        product.SKU,
		})
		invalidateRedisList()

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusCreated, product)
	})

	// PUT /api/products/:id
	g.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		var upd catalogService.ProductUpdate
		if err := c.Bind(&upd); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		product, err := catalogService.UpdateProduct(db, uint(id), upd)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(catalogStatus(err), echo.Map{"error": err.Error()})
		}

		auditRepo.NewAuditRepository(db).Record("product", "updated", echo.Map{
			"product_id": product.ProductID,
			"sku":        product.SKU,
		})
		invalidateRedisList()
		return c.JSON(http.StatusOK, product)
	})

	// DELETE /api/products/:id – blocked while stock or sales reference it
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := catalogService.DeleteProduct(db, uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			if errors.Is(err, catalogRepo.ErrProductReferenced) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		auditRepo.NewAuditRepository(db).Record("product", "deleted", echo.Map{"product_id": id})
		invalidateRedisList()
		return c.NoContent(http.StatusNoContent)
	})
}

func catalogStatus(err error) int {
	switch {
	case errors.Is(err, catalogService.ErrSKUExists):
		return http.StatusConflict
	case errors.Is(err, catalogService.ErrMissingFields),
		errors.Is(err, catalogService.ErrNegativeMoney):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalogService.ErrWarehouseNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Redis is a shared second-level cache for the product list; nil client means
// the in-process cache is the only layer.

func listFromRedis() ([]catalogEntity.Product, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	raw, err := config.RedisClient.Get(config.RedisCtx(), listCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []catalogEntity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func storeInRedis(products []catalogEntity.Product) {
	if config.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	config.RedisClient.Set(config.RedisCtx(), listCacheKey, raw, listCacheTTL*time.Second)
}

func invalidateRedisList() {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(config.RedisCtx(), listCacheKey)
}
