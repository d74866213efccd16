package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts and validates page/limit from query parameters
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// DateRange holds optional start/end date filters parsed from query params.
type DateRange struct {
	StartDate string
	EndDate   string
}

// ParseDateRange extracts start_date/end_date query parameters. Values are
// returned verbatim; format validation belongs to the service layer.
func ParseDateRange(c *gin.Context) DateRange {
	return DateRange{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}
