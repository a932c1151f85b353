package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core/university"
)

type groupApi struct {
	svc GroupService
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc GroupService) {
	api := groupApi{svc: svc}

	gg := g.Group("/groups")
	gg.GET("", api.query)
	gg.GET("/:id", api.retrieve)
	gg.GET("/:id/students", api.students)

	// staff only
	gg.POST("", api.create, jwt)
	gg.PUT("/:id", api.update, jwt)
	gg.DELETE("/:id", api.destroy, jwt)
}

// query lists all groups, or the groups of ?course_id.
func (api *groupApi) query(ctx echo.Context) error {
	courseID, filtered, err := queryID(ctx, "course_id")
	if err != nil {
		return err
	}

	var groups []university.GroupDto
	if filtered {
		groups, err = api.svc.QueryByCourse(ctx.Request().Context(), courseID)
	} else {
		groups, err = api.svc.GetAll(ctx.Request().Context())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	grp, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) students(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	students, err := api.svc.GetStudentsByGroupID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *groupApi) create(ctx echo.Context) error {
	var data university.GroupDto
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GroupDto")
	}
	grp, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *groupApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data university.GroupDto
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GroupDto")
	}
	data.ID = id

	grp, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), university.GroupDto{ID: id}); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
