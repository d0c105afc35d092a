package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
)

type courseApi struct {
	svc    *course.Service
	grades *grade.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service, grades *grade.Service) {
	api := courseApi{svc: svc, grades: grades}

	cg := g.Group("/courses")
	cg.GET("", api.list)
	cg.POST("", api.create)

	// detail endpoints
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
	cg.GET("/:id/grades", api.listGrades)
}

func (api courseApi) list(ctx echo.Context) error {
	courses, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api courseApi) create(ctx echo.Context) error {
	var data course.Course
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	c, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api courseApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.Search(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "searching course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api courseApi) update(ctx echo.Context) error {
	var data course.Course
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	data.ID = ctx.Param("id")
	c, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api courseApi) listGrades(ctx echo.Context) error {
	grades, err := api.grades.ByCourse(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "listing course grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}
