package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// QueryParams carries pagination values parsed from the query string.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

// FromEcho parses page_number and page_size with sane bounds.
func FromEcho(c echo.Context) QueryParams {
	p := QueryParams{PageNumber: 1, PageSize: defaultPageSize}
	if raw := c.QueryParam("page_number"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageNumber = n
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageSize = n
		}
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// Offset returns the SQL offset for the current page.
func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
