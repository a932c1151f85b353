package university_test

import (
	"context"
	"testing"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	"github.com/trezcool/unirecords/storage/database/inmem"
	"github.com/trezcool/unirecords/tests"
)

type services struct {
	db       *inmemdb.DB
	courses  *university.CourseService
	groups   *university.GroupService
	students *university.StudentService
}

func setup(t *testing.T) services {
	db := inmemdb.Open()
	testutil.SeedUniversity(t, db)
	return newServices(db)
}

func newServices(uow university.UnitOfWork) services {
	validator := testutil.NewValidator()
	logger := core.NewNopLogger()
	db, _ := uow.(*inmemdb.DB)
	return services{
		db:       db,
		courses:  university.NewCourseService(uow, validator, logger),
		groups:   university.NewGroupService(uow, validator, logger),
		students: university.NewStudentService(uow, validator, logger),
	}
}

// countStudents reads the store directly, bypassing the services.
func countStudents(t *testing.T, uow university.UnitOfWork) int {
	var n int
	err := uow.Do(context.Background(), func(repos university.Repositories) error {
		students, err := repos.Students.QueryStudents(context.Background(), false)
		n = len(students)
		return err
	})
	if err != nil {
		t.Fatalf("countStudents() failed: %v", err)
	}
	return n
}

// unloadedStore is a UnitOfWork whose listings come back unloaded.
type unloadedStore struct{}

type (
	unloadedCourses  struct{ university.CourseRepository }
	unloadedGroups   struct{ university.GroupRepository }
	unloadedStudents struct{ university.StudentRepository }
)

func (unloadedCourses) QueryCourses(context.Context) ([]university.Course, error) { return nil, nil }
func (unloadedGroups) QueryGroups(context.Context) ([]university.Group, error)    { return nil, nil }
func (unloadedStudents) QueryStudents(context.Context, bool) ([]university.Student, error) {
	return nil, nil
}

func (unloadedStore) Do(_ context.Context, fn func(repos university.Repositories) error) error {
	return fn(university.Repositories{
		Courses:  unloadedCourses{},
		Groups:   unloadedGroups{},
		Students: unloadedStudents{},
	})
}
