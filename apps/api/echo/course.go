package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type courseApi struct {
	svc CourseService
}

// Courses are read-only over HTTP; they are managed with the admin CLI.
func registerCourseAPI(g *echo.Group, svc CourseService) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/groups", api.groups)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.GetAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	course, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *courseApi) groups(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	groups, err := api.svc.GetGroupsByCourseID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, groups)
}
