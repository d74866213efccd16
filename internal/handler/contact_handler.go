package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api", middleware.RequireAuth())
	{
		api.POST("/shops/:id/suppliers", h.CreateSupplier)
		api.GET("/shops/:id/suppliers", h.ListSuppliers)
		api.PUT("/suppliers/:id", h.UpdateSupplier)
		api.DELETE("/suppliers/:id", h.DeleteSupplier)

		api.POST("/shops/:id/customers", h.CreateCustomer)
		api.GET("/shops/:id/customers", h.ListCustomers)
		api.PUT("/customers/:id", h.UpdateCustomer)
		api.DELETE("/customers/:id", h.DeleteCustomer)
	}
}

// CreateSupplier adds a supplier to a shop
// @Summary      Create supplier
// @Tags         contacts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Shop ID"
// @Param        payload  body      service.SupplierRequest  true  "Supplier Payload"
// @Success      201      {object}  response.Response{data=model.Supplier}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/shops/{id}/suppliers [post]
func (h *ContactHandler) CreateSupplier(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplier, err := h.contactService.CreateSupplier(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supplier))
}

// ListSuppliers lists a shop's suppliers
// @Summary      List suppliers
// @Tags         contacts
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Shop ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.ListData}
// @Router       /api/shops/{id}/suppliers [get]
func (h *ContactHandler) ListSuppliers(c *gin.Context) {
	params := pagination.Parse(c)
	suppliers, total, err := h.contactService.ListSuppliers(c.Request.Context(), c.GetString("userID"), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, suppliers, total, params.Page, params.Limit))
}

// UpdateSupplier updates a supplier's details
// @Summary      Update supplier
// @Tags         contacts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Supplier ID"
// @Param        payload  body      service.SupplierRequest  true  "Supplier Payload"
// @Success      200      {object}  response.Response{data=model.Supplier}
// @Failure      404      {object}  response.Response
// @Router       /api/suppliers/{id} [put]
func (h *ContactHandler) UpdateSupplier(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplier, err := h.contactService.UpdateSupplier(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

// DeleteSupplier removes a supplier
// @Summary      Delete supplier
// @Tags         contacts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/suppliers/{id} [delete]
func (h *ContactHandler) DeleteSupplier(c *gin.Context) {
	if err := h.contactService.DeleteSupplier(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "supplier deleted"}))
}

// CreateCustomer adds a customer to a shop
// @Summary      Create customer
// @Tags         contacts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Shop ID"
// @Param        payload  body      service.CustomerRequest  true  "Customer Payload"
// @Success      201      {object}  response.Response{data=model.Customer}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/shops/{id}/customers [post]
func (h *ContactHandler) CreateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	customer, err := h.contactService.CreateCustomer(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, customer))
}

// ListCustomers lists a shop's customers
// @Summary      List customers
// @Tags         contacts
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Shop ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.ListData}
// @Router       /api/shops/{id}/customers [get]
func (h *ContactHandler) ListCustomers(c *gin.Context) {
	params := pagination.Parse(c)
	customers, total, err := h.contactService.ListCustomers(c.Request.Context(), c.GetString("userID"), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, customers, total, params.Page, params.Limit))
}

// UpdateCustomer updates a customer's details
// @Summary      Update customer
// @Tags         contacts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Customer ID"
// @Param        payload  body      service.CustomerRequest  true  "Customer Payload"
// @Success      200      {object}  response.Response{data=model.Customer}
// @Failure      404      {object}  response.Response
// @Router       /api/customers/{id} [put]
func (h *ContactHandler) UpdateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	customer, err := h.contactService.UpdateCustomer(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

// DeleteCustomer removes a customer
// @Summary      Delete customer
// @Tags         contacts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/customers/{id} [delete]
func (h *ContactHandler) DeleteCustomer(c *gin.Context) {
	if err := h.contactService.DeleteCustomer(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "customer deleted"}))
}
