package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

type courseRepository struct {
	db *tables
}

var _ university.CourseRepository = (*courseRepository)(nil)

func (repo *courseRepository) query() []university.Course {
	courses := make([]university.Course, 0, len(repo.db.course))
	for _, id := range sortedIDs(repo.db.course) {
		courses = append(courses, repo.db.course[id])
	}
	return courses
}

func (repo *courseRepository) CreateCourse(_ context.Context, course university.Course) (university.Course, error) {
	repo.db.coursePK++
	course.ID = repo.db.coursePK
	course.Groups = nil
	repo.db.course[course.ID] = course
	return course, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, id int) (university.Course, error) {
	if c, ok := repo.db.course[id]; ok {
		return c, nil
	}
	return university.Course{}, errors.Wrapf(core.ErrNotFound, "course %d", id)
}

func (repo *courseRepository) GetCourseWithGroups(ctx context.Context, id int) (university.Course, error) {
	c, err := repo.GetCourse(ctx, id)
	if err != nil {
		return university.Course{}, err
	}
	groups := &groupRepository{db: repo.db}
	if c.Groups, err = groups.QueryGroupsByCourse(ctx, id); err != nil {
		return university.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) QueryCourses(_ context.Context) ([]university.Course, error) {
	return repo.query(), nil
}
