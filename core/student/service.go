package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/record"
)

type (
	Repository interface {
		record.Repository[Student, string]
	}

	// Service manages Students: Add, Update, Delete, Search and List.
	Service struct {
		*record.Manager[Student, string]
	}
)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		Manager: record.NewManager[Student, string]("student", repo, validate, logger),
	}
}
