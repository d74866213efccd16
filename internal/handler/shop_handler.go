package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shopService service.ShopService
}

func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func (h *ShopHandler) RegisterRoutes(router *gin.RouterGroup) {
	shops := router.Group("/api/shops", middleware.RequireAuth())
	{
		shops.POST("", h.CreateShop)
		shops.GET("", h.ListShops)
		shops.GET("/:id", h.GetShop)
		shops.PUT("/:id", h.UpdateShop)
		shops.DELETE("/:id", h.DeleteShop)
	}
}

// CreateShop registers a new shop for the authenticated owner
// @Summary      Create shop
// @Tags         shops
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ShopRequest  true  "Create Shop Payload"
// @Success      201      {object}  response.Response{data=model.Shop}
// @Failure      400      {object}  response.Response
// @Router       /api/shops [post]
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req service.ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, shop))
}

// ListShops lists the authenticated owner's shops
// @Summary      List shops
// @Tags         shops
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.ListData}
// @Router       /api/shops [get]
func (h *ShopHandler) ListShops(c *gin.Context) {
	params := pagination.Parse(c)
	shops, total, err := h.shopService.ListShops(c.Request.Context(), c.GetString("userID"), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, shops, total, params.Page, params.Limit))
}

// GetShop fetches one shop by ID
// @Summary      Get shop
// @Tags         shops
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Shop ID"
// @Success      200  {object}  response.Response{data=model.Shop}
// @Failure      404  {object}  response.Response
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.shopService.GetShop(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, shop))
}

// UpdateShop updates a shop's details
// @Summary      Update shop
// @Tags         shops
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Shop ID"
// @Param        payload  body      service.ShopRequest  true  "Update Shop Payload"
// @Success      200      {object}  response.Response{data=model.Shop}
// @Failure      404      {object}  response.Response
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var req service.ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, shop))
}

// DeleteShop soft-deletes a shop
// @Summary      Delete shop
// @Tags         shops
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Shop ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	if err := h.shopService.DeleteShop(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "shop deleted"}))
}
