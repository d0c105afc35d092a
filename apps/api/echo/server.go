package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool
	}

	// Services are the record managers exposed by the API.
	Services struct {
		Students *student.Service
		Courses  *course.Service
		Grades   *grade.Service
	}

	Server struct {
		opts       *Options
		app        *echo.Echo
		svc        Services
		logger     core.Logger
		translator ut.Translator
		shutdown   chan os.Signal
		errors     chan error
	}
)

func NewServer(opts *Options, svc Services, logger core.Logger, translator ut.Translator) *Server {
	s := &Server{
		opts:       opts,
		app:        echo.New(),
		svc:        svc,
		logger:     logger,
		translator: translator,
		shutdown:   make(chan os.Signal, 1),
		errors:     make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, s.translator, s.signalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerStudentAPI(v1, s.svc.Students, s.svc.Grades)
	registerCourseAPI(v1, s.svc.Courses, s.svc.Grades)
	registerGradeAPI(v1, s.svc.Grades)
}

// Start listens until the server is shut down. Listen failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to SIMS API!")
}
