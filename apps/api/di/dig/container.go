package dig_container

import (
	"context"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/sims/apps/api/echo"
	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
	logsvc "github.com/trezcool/sims/services/logger"
	"github.com/trezcool/sims/storage"
)

type ServicesParam struct {
	dig.In
	Students *student.Service
	Courses  *course.Service
	Grades   *grade.Service
}

func newRollbarLogger(conf *core.Config) *logsvc.RollbarLogger {
	return logsvc.NewRollbarLogger(logsvc.NewLogger(os.Stdout, conf), conf)
}

func newLogger(l *logsvc.RollbarLogger) core.Logger {
	return l
}

func newStores(conf *core.Config, logger core.Logger) (*storage.Stores, error) {
	return storage.Open(context.Background(), conf, logger)
}

func newStudentRepository(s *storage.Stores) student.Repository { return s.Students }
func newCourseRepository(s *storage.Stores) course.Repository   { return s.Courses }
func newGradeRepository(s *storage.Stores) grade.Repository     { return s.Grades }

func newServer(conf *core.Config, svc ServicesParam, logger core.Logger, translator ut.Translator) *echoapi.Server {
	return echoapi.NewServer(
		&echoapi.Options{
			Address: conf.Server.Host,
			Debug:   conf.Debug,
		},
		echoapi.Services{
			Students: svc.Students,
			Courses:  svc.Courses,
			Grades:   svc.Grades,
		},
		logger,
		translator,
	)
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newRollbarLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newStores))
	must(c.Provide(newStudentRepository))
	must(c.Provide(newCourseRepository))
	must(c.Provide(newGradeRepository))
	must(c.Provide(core.NewValidator))
	must(c.Provide(student.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
