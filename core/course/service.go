package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/record"
)

type (
	Repository interface {
		record.Repository[Course, string]
	}

	// Service manages Courses: Add, Update, Delete, Search and List.
	Service struct {
		*record.Manager[Course, string]
	}
)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		Manager: record.NewManager[Course, string]("course", repo, validate, logger),
	}
}
