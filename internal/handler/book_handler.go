package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

// BookHandler exposes the cost book and loss book.
type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api", middleware.RequireAuth())
	{
		api.POST("/cost-categories", h.CreateCostCategory)
		api.GET("/cost-categories", h.ListCostCategories)
		api.POST("/shops/:id/costs", h.CreateCostEntry)
		api.GET("/shops/:id/costs", h.ListCostEntries)

		api.POST("/loss-categories", h.CreateLossCategory)
		api.GET("/loss-categories", h.ListLossCategories)
		api.POST("/shops/:id/losses", h.CreateLossEntry)
		api.GET("/shops/:id/losses", h.ListLossEntries)
	}
}

// CreateCostCategory adds a cost category label
// @Summary      Create cost category
// @Tags         books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BookCategoryRequest  true  "Category Payload"
// @Success      201      {object}  response.Response{data=model.CostCategory}
// @Router       /api/cost-categories [post]
func (h *BookHandler) CreateCostCategory(c *gin.Context) {
	var req service.BookCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	category, err := h.bookService.CreateCostCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// ListCostCategories lists cost category labels
// @Summary      List cost categories
// @Tags         books
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.CostCategory}
// @Router       /api/cost-categories [get]
func (h *BookHandler) ListCostCategories(c *gin.Context) {
	categories, err := h.bookService.ListCostCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCostEntry records a dated cost for a shop
// @Summary      Create cost entry
// @Tags         books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Shop ID"
// @Param        payload  body      service.BookEntryRequest  true  "Cost Entry Payload"
// @Success      201      {object}  response.Response{data=model.CostEntry}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/shops/{id}/costs [post]
func (h *BookHandler) CreateCostEntry(c *gin.Context) {
	var req service.BookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	entry, err := h.bookService.CreateCostEntry(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// ListCostEntries lists a shop's cost entries, optionally date-filtered
// @Summary      List cost entries
// @Tags         books
// @Security     BearerAuth
// @Produce      json
// @Param        id          path      string  true   "Shop ID"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.ListData}
// @Router       /api/shops/{id}/costs [get]
func (h *BookHandler) ListCostEntries(c *gin.Context) {
	params := pagination.Parse(c)
	dates := pagination.ParseDateRange(c)
	entries, total, err := h.bookService.ListCostEntries(c.Request.Context(), c.GetString("userID"), c.Param("id"),
		dates.StartDate, dates.EndDate, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, entries, total, params.Page, params.Limit))
}

// CreateLossCategory adds a loss category label
// @Summary      Create loss category
// @Tags         books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BookCategoryRequest  true  "Category Payload"
// @Success      201      {object}  response.Response{data=model.LossCategory}
// @Router       /api/loss-categories [post]
func (h *BookHandler) CreateLossCategory(c *gin.Context) {
	var req service.BookCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	category, err := h.bookService.CreateLossCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// ListLossCategories lists loss category labels
// @Summary      List loss categories
// @Tags         books
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.LossCategory}
// @Router       /api/loss-categories [get]
func (h *BookHandler) ListLossCategories(c *gin.Context) {
	categories, err := h.bookService.ListLossCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateLossEntry records a dated loss for a shop
// @Summary      Create loss entry
// @Tags         books
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Shop ID"
// @Param        payload  body      service.BookEntryRequest  true  "Loss Entry Payload"
// @Success      201      {object}  response.Response{data=model.LossEntry}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/shops/{id}/losses [post]
func (h *BookHandler) CreateLossEntry(c *gin.Context) {
	var req service.BookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	entry, err := h.bookService.CreateLossEntry(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// ListLossEntries lists a shop's loss entries, optionally date-filtered
// @Summary      List loss entries
// @Tags         books
// @Security     BearerAuth
// @Produce      json
// @Param        id          path      string  true   "Shop ID"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.ListData}
// @Router       /api/shops/{id}/losses [get]
func (h *BookHandler) ListLossEntries(c *gin.Context) {
	params := pagination.Parse(c)
	dates := pagination.ParseDateRange(c)
	entries, total, err := h.bookService.ListLossEntries(c.Request.Context(), c.GetString("userID"), c.Param("id"),
		dates.StartDate, dates.EndDate, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, entries, total, params.Page, params.Limit))
}
