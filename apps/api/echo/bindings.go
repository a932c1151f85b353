package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID reads the integer path param `name`. Anything that is not a positive integer is not found.
func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

// queryID reads the optional integer query param `name`; ok is false when it is absent.
func queryID(ctx echo.Context, name string) (id int, ok bool, err error) {
	val := ctx.QueryParam(name)
	if val == "" {
		return 0, false, nil
	}
	if id, err = strconv.Atoi(val); err != nil {
		return 0, false, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return id, true, nil
}

// queryBool reads the optional boolean query param `name`.
func queryBool(ctx echo.Context, name string) bool {
	b, _ := strconv.ParseBool(ctx.QueryParam(name))
	return b
}
