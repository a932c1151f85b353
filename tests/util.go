package testutil

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	"github.com/trezcool/unirecords/storage/database"
)

// Fixture groups, in insertion order: the n-th group gets Id n on a fresh store.
// Course 2 (Software Engineer) only holds group 13.
var FixtureGroups = []university.Group{
	{Name: "SE-11", CourseID: 1},
	{Name: "SE-12", CourseID: 1},
	{Name: "DS-11", CourseID: 3},
	{Name: "DS-12", CourseID: 3},
	{Name: "SWE-11", CourseID: 1},
	{Name: "DA-11", CourseID: 4},
	{Name: "DA-12", CourseID: 4},
	{Name: "CS-11", CourseID: 5},
	{Name: "CS-12", CourseID: 5},
	{Name: "SE-21", CourseID: 1},
	{Name: "DS-21", CourseID: 3},
	{Name: "DA-21", CourseID: 4},
	{Name: "SWE-32", CourseID: 2},
	{Name: "CS-21", CourseID: 5},
}

// Fixture students, in insertion order. Only groups 1 and 14 have students.
var FixtureStudents = []university.Student{
	{FirstName: "John", LastName: "Doe", GroupID: 14},
	{FirstName: "Jane", LastName: "Roe", GroupID: 1},
	{FirstName: "Ada", LastName: "Lovelace", GroupID: university.Unassigned},
}

// NewValidator returns a university.Validator that logs nothing.
func NewValidator() *university.Validator {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return university.NewValidator(validate, translator, core.NewNopLogger())
}

// SeedUniversity fills an empty store with the default courses and the fixture groups and students.
func SeedUniversity(t *testing.T, uow university.UnitOfWork) {
	t.Helper()
	err := uow.Do(context.Background(), func(repos university.Repositories) error {
		for _, c := range university.DefaultCourses {
			if _, err := repos.Courses.CreateCourse(context.Background(), university.Course{Name: c.Name}); err != nil {
				return err
			}
		}
		for _, g := range FixtureGroups {
			if _, err := repos.Groups.CreateGroup(context.Background(), g); err != nil {
				return err
			}
		}
		for _, s := range FixtureStudents {
			if _, err := repos.Students.CreateStudent(context.Background(), s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("SeedUniversity() failed: %v", err)
	}
}

func CreateStudent(t *testing.T, uow university.UnitOfWork, first, last string, groupID int) university.Student {
	t.Helper()
	var std university.Student
	err := uow.Do(context.Background(), func(repos university.Repositories) error {
		var err error
		std, err = repos.Students.CreateStudent(context.Background(), university.Student{
			FirstName: first,
			LastName:  last,
			GroupID:   groupID,
		})
		return err
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

// OpenSQLite returns a migrated, in-memory sqlite database, closed with the test.
func OpenSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.EngineSQLite, Name: ":memory:"}}

	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db.DB, conf.Database.Engine); err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	return db
}
