package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

type (
	CourseService interface {
		GetByID(ctx context.Context, id int) (university.CourseDto, error)
		GetAll(ctx context.Context) ([]university.CourseDto, error)
		GetGroupsByCourseID(ctx context.Context, courseID int) ([]university.GroupDto, error)
	}

	GroupService interface {
		GetByID(ctx context.Context, id int) (university.GroupDto, error)
		GetAll(ctx context.Context) ([]university.GroupDto, error)
		QueryByCourse(ctx context.Context, courseID int) ([]university.GroupDto, error)
		GetStudentsByGroupID(ctx context.Context, groupID int) ([]university.StudentDto, error)
		Create(ctx context.Context, dto university.GroupDto) (university.GroupDto, error)
		Update(ctx context.Context, dto university.GroupDto) (university.GroupDto, error)
		Delete(ctx context.Context, dto university.GroupDto) error
	}

	StudentService interface {
		GetByID(ctx context.Context, id int) (university.StudentDto, error)
		GetAll(ctx context.Context) ([]university.StudentDto, error)
		GetAllWithGroup(ctx context.Context) ([]university.StudentDto, error)
		Create(ctx context.Context, dto university.StudentDto) (university.StudentDto, error)
		Update(ctx context.Context, dto university.StudentDto) (university.StudentDto, error)
		Delete(ctx context.Context, dto university.StudentDto) error
		AddToGroup(ctx context.Context, dto university.StudentDto) (university.StudentDto, error)
		RemoveFromGroup(ctx context.Context, dto university.StudentDto) (university.StudentDto, error)
	}

	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		CourseSvc  CourseService
		GroupSvc   GroupService
		StudentSvc StudentService
		// Registerer receives the HTTP metrics. Defaults to a private registry.
		Registerer prometheus.Registerer
		Gatherer   prometheus.Gatherer
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(ctx context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

var (
	_ Server         = (*server)(nil)
	_ CourseService  = (*university.CourseService)(nil)
	_ GroupService   = (*university.GroupService)(nil)
	_ StudentService = (*university.StudentService)(nil)
)

func NewServer(deps ServerDeps) Server {
	if deps.Registerer == nil || deps.Gatherer == nil {
		reg := prometheus.NewRegistry()
		deps.Registerer, deps.Gatherer = reg, reg
	}

	s := &server{
		deps:     deps,
		app:      echo.New(),
		auth:     newAuthenticator(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf
	metrics := newMetrics(s.deps.Registerer)

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(metrics.middleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	s.app.GET("/metrics", metrics.handler(s.deps.Gatherer))

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.auth.jwtConfig)

	registerAuthAPI(v1, s.auth, s.deps.Validate)
	registerCourseAPI(v1, s.deps.CourseSvc)
	registerGroupAPI(v1, jwt, s.deps.GroupSvc)
	registerStudentAPI(v1, jwt, s.deps.StudentSvc)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
