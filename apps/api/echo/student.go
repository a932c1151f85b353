package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core/university"
)

type studentApi struct {
	svc StudentService
}

type GroupAssignment struct {
	GroupID int `json:"group_id"`
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc StudentService) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)

	// staff only
	sg.POST("", api.create, jwt)
	sg.PUT("/:id", api.update, jwt)
	sg.DELETE("/:id", api.destroy, jwt)
	sg.PUT("/:id/group", api.addToGroup, jwt)
	sg.DELETE("/:id/group", api.removeFromGroup, jwt)
}

// query lists all students; ?with_group=true adds the group names.
func (api *studentApi) query(ctx echo.Context) error {
	var (
		students []university.StudentDto
		err      error
	)
	if queryBool(ctx, "with_group") {
		students, err = api.svc.GetAllWithGroup(ctx.Request().Context())
	} else {
		students, err = api.svc.GetAll(ctx.Request().Context())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	std, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data university.StudentDto
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentDto")
	}
	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data university.StudentDto
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentDto")
	}
	data.ID = id

	std, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), university.StudentDto{ID: id}); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) addToGroup(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data GroupAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GroupAssignment")
	}

	std, err := api.svc.AddToGroup(ctx.Request().Context(), university.StudentDto{ID: id, GroupID: data.GroupID})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) removeFromGroup(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	std, err := api.svc.RemoveFromGroup(ctx.Request().Context(), university.StudentDto{ID: id})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}
