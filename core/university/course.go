package university

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
)

type CourseService struct {
	service
}

func NewCourseService(uow UnitOfWork, validator *Validator, logger core.Logger) *CourseService {
	return &CourseService{service: newService(uow, validator, logger)}
}

func (svc *CourseService) GetByID(ctx context.Context, id int) (CourseDto, error) {
	const op = "CourseService.GetByID"
	if err := svc.validator.GetByID(op, "course", id); err != nil {
		return CourseDto{}, err
	}

	var course Course
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if course, err = repos.Courses.GetCourse(ctx, id); err != nil {
			return svc.lookup(err, op, "course", id)
		}
		return nil
	})
	if err != nil {
		return CourseDto{}, err
	}
	return NewCourseDto(course), nil
}

func (svc *CourseService) GetAll(ctx context.Context) ([]CourseDto, error) {
	const op = "CourseService.GetAll"
	var courses []Course
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		courses, err = repos.Courses.QueryCourses(ctx)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return nil, err
	}
	if err := svc.validator.GetAll(op, "course", courses != nil); err != nil {
		return nil, err
	}
	return NewCourseDtos(courses), nil
}

// GetGroupsByCourseID fails with core.ErrNotFound when the course does not exist,
// and with core.ErrEmptyResult when it has no groups.
func (svc *CourseService) GetGroupsByCourseID(ctx context.Context, courseID int) ([]GroupDto, error) {
	const op = "CourseService.GetGroupsByCourseID"
	if err := svc.validator.GetByID(op, "course", courseID); err != nil {
		return nil, err
	}

	var course Course
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if course, err = repos.Courses.GetCourseWithGroups(ctx, courseID); err != nil {
			return svc.lookup(err, op, "course", courseID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(course.Groups) == 0 {
		return nil, svc.fail(core.ErrEmptyResult, op, "There are no groups for course with Id [%d].", courseID)
	}
	return NewGroupDtos(course.Groups), nil
}

func (svc *CourseService) Create(ctx context.Context, dto CourseDto) (CourseDto, error) {
	const op = "CourseService.Create"
	dto.Name = core.CleanString(dto.Name)
	if err := svc.validator.CreateCourse(dto); err != nil {
		return CourseDto{}, err
	}

	var course Course
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		course, err = repos.Courses.CreateCourse(ctx, Course{Name: dto.Name})
		return errors.Wrap(err, op)
	})
	if err != nil {
		return CourseDto{}, err
	}

	svc.logger.Info(fmt.Sprintf("Course [%s] created with Id [%d].", course.Name, course.ID))
	return NewCourseDto(course), nil
}
