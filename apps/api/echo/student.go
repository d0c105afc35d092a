package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
)

type studentApi struct {
	svc    *student.Service
	grades *grade.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service, grades *grade.Service) {
	api := studentApi{svc: svc, grades: grades}

	sg := g.Group("/students")
	sg.GET("", api.list)
	sg.POST("", api.create)

	// detail endpoints
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/grades", api.listGrades)
}

func (api studentApi) list(ctx echo.Context) error {
	students, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api studentApi) create(ctx echo.Context) error {
	var data student.Student
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	s, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api studentApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Search(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "searching student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api studentApi) update(ctx echo.Context) error {
	var data student.Student
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	data.ID = ctx.Param("id")
	s, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api studentApi) listGrades(ctx echo.Context) error {
	grades, err := api.grades.ByStudent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "listing student grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}
