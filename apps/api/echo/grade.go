package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core/grade"
)

type gradeApi struct {
	svc *grade.Service
}

func registerGradeAPI(g *echo.Group, svc *grade.Service) {
	api := gradeApi{svc: svc}

	gg := g.Group("/grades")
	gg.GET("", api.list)
	gg.POST("", api.create)

	// detail endpoints
	gg.GET("/:student_id/:course_id", api.retrieve)
	gg.PUT("/:student_id/:course_id", api.update)
	gg.DELETE("/:student_id/:course_id", api.destroy)
}

func gradeKey(ctx echo.Context) grade.Key {
	return grade.Key{StudentID: ctx.Param("student_id"), CourseID: ctx.Param("course_id")}
}

func (api gradeApi) list(ctx echo.Context) error {
	grades, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api gradeApi) create(ctx echo.Context) error {
	var data grade.Grade
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	g, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api gradeApi) retrieve(ctx echo.Context) error {
	g, err := api.svc.Search(ctx.Request().Context(), gradeKey(ctx))
	if err != nil {
		return errors.Wrap(err, "searching grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api gradeApi) update(ctx echo.Context) error {
	var data grade.Grade
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	key := gradeKey(ctx)
	data.StudentID, data.CourseID = key.StudentID, key.CourseID
	g, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api gradeApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), gradeKey(ctx)); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
