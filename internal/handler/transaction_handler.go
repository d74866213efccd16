package handler

import (
	"net/http"
	"strconv"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/api/transactions", middleware.RequireAuth())
	{
		transactions.GET("", h.ListTransactions)
		transactions.GET("/:id", h.GetTransaction)
	}
}

// ListTransactions lists ledger entries for a shop
// @Summary      List transactions
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        shop_id     query     string  true   "Shop ID"
// @Param        type        query     string  false  "BUY or SELL"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.ListData}
// @Failure      404         {object}  response.Response
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	dates := pagination.ParseDateRange(c)

	transactions, total, err := h.transactionService.ListTransactions(c.Request.Context(), c.GetString("userID"),
		service.TransactionQuery{
			ShopID:          c.Query("shop_id"),
			TransactionType: c.Query("type"),
			StartDate:       dates.StartDate,
			EndDate:         dates.EndDate,
			Page:            page,
			Limit:           limit,
		})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, transactions, total, page, limit))
}

// GetTransaction fetches one ledger entry with its items
// @Summary      Get transaction
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=service.TransactionView}
// @Failure      404  {object}  response.Response
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, transaction))
}
