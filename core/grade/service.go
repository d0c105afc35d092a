package grade

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/record"
)

type (
	Repository interface {
		record.Repository[Grade, Key]
		// QueryByStudent returns the grades of a student, ordered by course ID when the backend sorts.
		QueryByStudent(ctx context.Context, studentID string) ([]Grade, error)
		// QueryByCourse returns the grades of a course, ordered by student ID when the backend sorts.
		QueryByCourse(ctx context.Context, courseID string) ([]Grade, error)
	}

	// Service manages Grades: Add, Update, Delete, Search and List plus the per student & per course projections.
	Service struct {
		*record.Manager[Grade, Key]
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		Manager: record.NewManager[Grade, Key]("grade", repo, validate, logger),
		repo:    repo,
		logger:  logger,
	}
}

func (svc *Service) ByStudent(ctx context.Context, studentID string) ([]Grade, error) {
	grades, err := svc.repo.QueryByStudent(ctx, core.CleanString(studentID))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("retrieving grades of student %q failed", studentID), err)
		return nil, errors.Wrapf(err, "querying grades of student %q", studentID)
	}
	return grades, nil
}

func (svc *Service) ByCourse(ctx context.Context, courseID string) ([]Grade, error) {
	grades, err := svc.repo.QueryByCourse(ctx, core.CleanString(courseID))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("retrieving grades of course %q failed", courseID), err)
		return nil, errors.Wrapf(err, "querying grades of course %q", courseID)
	}
	return grades, nil
}

// DeleteText deletes the grade whose key is given in its `studentID-courseID` text form.
func (svc *Service) DeleteText(ctx context.Context, text string) error {
	key, err := ParseKey(text)
	if err != nil {
		svc.logger.Warn("delete grade failed! " + err.Error())
		return err
	}
	return svc.Delete(ctx, key)
}

// SearchText looks up the grade whose key is given in its `studentID-courseID` text form.
func (svc *Service) SearchText(ctx context.Context, text string) (Grade, error) {
	key, err := ParseKey(text)
	if err != nil {
		svc.logger.Warn("search grade failed! " + err.Error())
		return Grade{}, err
	}
	return svc.Search(ctx, key)
}
