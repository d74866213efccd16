package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	stockService   service.StockService
}

func NewCatalogHandler(catalogService service.CatalogService, stockService service.StockService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, stockService: stockService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/api/catalog", middleware.RequireAuth())
	{
		catalog.POST("/units", h.CreateUnit)
		catalog.GET("/units", h.ListUnits)

		catalog.POST("/categories", h.CreateCategory)
		catalog.GET("/categories", h.ListCategories)
		catalog.PUT("/categories/:id/units", h.UpdateTransactionUnits)
		catalog.GET("/categories/:id/allowed-units", h.AllowedUnits)

		catalog.POST("/subcategories", h.CreateSubCategory)
		catalog.GET("/subcategories", h.ListSubCategories)
	}
}

// CreateUnit registers a unit of measure
// @Summary      Create unit
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateUnitRequest  true  "Create Unit Payload"
// @Success      201      {object}  response.Response{data=model.Unit}
// @Failure      400      {object}  response.Response
// @Router       /api/catalog/units [post]
func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	var req service.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	unit, err := h.catalogService.CreateUnit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, unit))
}

// ListUnits lists all units of measure
// @Summary      List units
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Unit}
// @Router       /api/catalog/units [get]
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	units, err := h.catalogService.ListUnits(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, units))
}

// CreateCategory registers a category with its base unit and allowed units
// @Summary      Create category
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=model.Category}
// @Failure      400      {object}  response.Response
// @Router       /api/catalog/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// ListCategories lists all categories
// @Summary      List categories
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Category}
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// UpdateTransactionUnits replaces a category's allowed transaction units
// @Summary      Update category units
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string    true  "Category ID"
// @Param        payload  body      object{transaction_unit_ids=[]string}  true  "Unit IDs"
// @Success      200      {object}  response.Response{data=model.Category}
// @Failure      404      {object}  response.Response
// @Router       /api/catalog/categories/{id}/units [put]
func (h *CatalogHandler) UpdateTransactionUnits(c *gin.Context) {
	var req struct {
		TransactionUnitIDs []string `json:"transaction_unit_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.catalogService.UpdateTransactionUnits(c.Request.Context(), c.Param("id"), req.TransactionUnitIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// AllowedUnits lists the units a category may transact in
// @Summary      Allowed units
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response{data=[]model.Unit}
// @Failure      404  {object}  response.Response
// @Router       /api/catalog/categories/{id}/allowed-units [get]
func (h *CatalogHandler) AllowedUnits(c *gin.Context) {
	units, err := h.stockService.AllowedUnits(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, units))
}

// CreateSubCategory registers a subcategory under a category
// @Summary      Create subcategory
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSubCategoryRequest  true  "Create SubCategory Payload"
// @Success      201      {object}  response.Response{data=model.SubCategory}
// @Failure      400      {object}  response.Response
// @Router       /api/catalog/subcategories [post]
func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req service.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sub, err := h.catalogService.CreateSubCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sub))
}

// ListSubCategories lists subcategories, optionally filtered by category
// @Summary      List subcategories
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        category_id  query     string  false  "Category ID filter"
// @Success      200          {object}  response.Response{data=[]model.SubCategory}
// @Router       /api/catalog/subcategories [get]
func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	subs, err := h.catalogService.ListSubCategories(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, subs))
}
