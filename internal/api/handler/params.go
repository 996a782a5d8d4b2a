package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// idParam parses a numeric path parameter, failing the request with a 400
// before any service call when it is not a positive integer.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
