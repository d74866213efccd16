package handler

import (
	"errors"
	"net/http"

	"shopstock/internal/domain"

	"github.com/gin-gonic/gin"

	"shopstock/pkg/response"
)

// writeError maps service errors onto HTTP status codes. Business-rule
// rejections are client errors; conflict-class rejections get 409; a failed
// atomic unit is a 500.
func writeError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientStockError
	var invalidDue *domain.InvalidDueAmountError
	var failed *domain.TransactionFailedError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.As(err, &insufficient), errors.Is(err, domain.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, domain.ErrUnitNotAllowed),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidConversion),
		errors.Is(err, domain.ErrProductShopMismatch),
		errors.As(err, &invalidDue):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.As(err, &failed):
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
