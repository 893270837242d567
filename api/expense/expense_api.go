package expense

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tillpoint/api"
	ledgerEntity "tillpoint/model/entity/ledger"
	auditRepo "tillpoint/model/repository/audit"
	ledgerRepo "tillpoint/model/repository/ledger"
)

func init() {
	api.RegisterModule(RegisterExpenseRoutes)
}

func RegisterExpenseRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/expenses")
	repo := ledgerRepo.NewExpenseRepository(db)

	// GET /api/expenses?limit=N – newest first
	g.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		expenses, err := repo.List(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, expenses)
	})

	// POST /api/expenses
	g.POST("", func(c echo.Context) error {
		var body struct {
			Description string          `json:"description"`
			Amount      decimal.Decimal `json:"amount"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		body.Description = strings.TrimSpace(body.Description)
		if body.Description == "" {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "description is required"})
		}
		if !body.Amount.IsPositive() {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "amount must be positive"})
		}

		expense := ledgerEntity.Expense{Description: body.Description, Amount: body.Amount}
		if err := repo.Create(&expense); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		auditRepo.NewAuditRepository(db).Record("expense", "created", echo.Map{
			"expense_id": expense.ExpenseID,
			"amount":     expense.Amount,
		})
		return c.JSON(http.StatusCreated, expense)
	})
}
