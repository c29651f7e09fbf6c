package api

import (
	"alcyxob/gym-admin/internal/service"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp.
// Empty input yields the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// ListParams are the table controls shared by list endpoints.
type ListParams struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=0,max=500"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc"`
}

func bindListQuery(c *gin.Context) (service.ListQuery, bool) {
	var p ListParams
	if err := c.ShouldBindQuery(&p); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return service.ListQuery{}, false
	}
	return service.ListQuery{Page: p.Page, PageSize: p.PageSize, SortBy: p.SortBy, Order: p.Order}, true
}

// writeList answers with the bare item array when the caller asked for no
// paging, and with the page envelope otherwise.
func writeList[T any](c *gin.Context, q service.ListQuery, page service.Page[T]) {
	if q.Page == 0 && q.PageSize == 0 {
		c.JSON(http.StatusOK, page.Items)
		return
	}
	c.JSON(http.StatusOK, page)
}
