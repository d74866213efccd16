package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports", middleware.RequireAuth())
	{
		reports.GET("/summary", h.Summary)
	}
}

// Summary aggregates a shop's activity over a period
// @Summary      Period summary
// @Description  Aggregates purchases, sales, orders, costs, losses and dues over a period
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        shop_id     query     string  true   "Shop ID"
// @Param        period      query     string  false  "daily, weekly, monthly or custom (default daily)"
// @Param        start_date  query     string  false  "Start date for custom period (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date for custom period (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=model.PeriodSummary}
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	dates := pagination.ParseDateRange(c)
	summary, err := h.reportService.Summary(c.Request.Context(), c.GetString("userID"),
		c.Query("shop_id"), c.Query("period"), dates.StartDate, dates.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
