package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProductHandler exposes the stock engine: purchases, sales, manual
// corrections and the price list.
type ProductHandler struct {
	stockService service.StockService
}

func NewProductHandler(stockService service.StockService) *ProductHandler {
	return &ProductHandler{stockService: stockService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products", middleware.RequireAuth())
	{
		products.POST("/add-stock", h.AddStock)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("/:id/sell", h.SellStock)
		products.PUT("/:id/stock", h.UpdateStockManually)
		products.PUT("/:id/base-price", h.UpdateBasePrice)
		products.PUT("/:id/prices", h.UpdateUnitPrice)
	}
}

// AddStock records a purchase, creating the product on first buy
// @Summary      Add stock
// @Description  Records a BUY transaction and increases stock atomically
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AddStockRequest  true  "Add Stock Payload"
// @Success      201      {object}  response.Response{data=service.StockOperationResult}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/products/add-stock [post]
func (h *ProductHandler) AddStock(c *gin.Context) {
	var req service.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.stockService.AddStock(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// SellStock records a sale against a product
// @Summary      Sell stock
// @Description  Records a SELL transaction and decreases stock atomically; rejects overselling
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Product ID"
// @Param        payload  body      service.SellStockRequest  true  "Sell Stock Payload"
// @Success      201      {object}  response.Response{data=service.StockOperationResult}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/products/{id}/sell [post]
func (h *ProductHandler) SellStock(c *gin.Context) {
	var req service.SellStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.stockService.SellStock(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListProducts lists a shop's products
// @Summary      List products
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        shop_id      query     string  true   "Shop ID"
// @Param        category_id  query     string  false  "Category ID filter"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Items per page (default 20)"
// @Success      200          {object}  response.Response{data=response.ListData}
// @Failure      404          {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)
	products, total, err := h.stockService.ListProducts(c.Request.Context(), c.GetString("userID"),
		c.Query("shop_id"), c.Query("category_id"), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, products, total, params.Page, params.Limit))
}

// GetProduct fetches one product with stock and price list
// @Summary      Get product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ShopProductView}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	view, err := h.stockService.GetProduct(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// UpdateStockManually sets stock counters directly without a ledger entry
// @Summary      Manual stock update
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true  "Product ID"
// @Param        payload  body      service.ManualStockUpdateRequest  true  "Manual Update Payload"
// @Success      200      {object}  response.Response{data=service.ShopProductView}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) UpdateStockManually(c *gin.Context) {
	var req service.ManualStockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	view, err := h.stockService.UpdateStockManually(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// UpdateBasePrice sets the product's base-unit price
// @Summary      Update base price
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Product ID"
// @Param        payload  body      service.UpdateBasePriceRequest  true  "Base Price Payload"
// @Success      200      {object}  response.Response{data=service.ShopProductView}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id}/base-price [put]
func (h *ProductHandler) UpdateBasePrice(c *gin.Context) {
	var req service.UpdateBasePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	view, err := h.stockService.UpdateBasePrice(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// UpdateUnitPrice upserts a per-unit price row for the product
// @Summary      Update unit price
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Product ID"
// @Param        payload  body      service.UpdateUnitPriceRequest  true  "Unit Price Payload"
// @Success      200      {object}  response.Response{data=service.ShopProductView}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id}/prices [put]
func (h *ProductHandler) UpdateUnitPrice(c *gin.Context) {
	var req service.UpdateUnitPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	view, err := h.stockService.UpdateUnitPrice(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}
