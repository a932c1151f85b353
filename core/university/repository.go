package university

import "context"

// Repositories return core.ErrNotFound (possibly wrapped) when a single lookup finds nothing.
// Listing methods never return a nil slice without an error.
type (
	CourseRepository interface {
		CreateCourse(ctx context.Context, course Course) (Course, error)
		GetCourse(ctx context.Context, id int) (Course, error)
		// GetCourseWithGroups returns the course with its Groups loaded.
		GetCourseWithGroups(ctx context.Context, id int) (Course, error)
		QueryCourses(ctx context.Context) ([]Course, error)
	}

	GroupRepository interface {
		CreateGroup(ctx context.Context, group Group) (Group, error)
		GetGroup(ctx context.Context, id int) (Group, error)
		GetGroupByName(ctx context.Context, name string) (Group, error)
		// GetGroupWithStudents returns the group with its Students loaded.
		GetGroupWithStudents(ctx context.Context, id int) (Group, error)
		QueryGroups(ctx context.Context) ([]Group, error)
		QueryGroupsByCourse(ctx context.Context, courseID int) ([]Group, error)
		UpdateGroup(ctx context.Context, group Group) (Group, error)
		DeleteGroup(ctx context.Context, id int) error
	}

	StudentRepository interface {
		CreateStudent(ctx context.Context, student Student) (Student, error)
		GetStudent(ctx context.Context, id int) (Student, error)
		// QueryStudents returns all students, with their Group loaded when withGroup is set.
		QueryStudents(ctx context.Context, withGroup bool) ([]Student, error)
		QueryStudentsByGroup(ctx context.Context, groupID int) ([]Student, error)
		// GroupHasStudents reports whether any student references the group.
		GroupHasStudents(ctx context.Context, groupID int) (bool, error)
		UpdateStudent(ctx context.Context, student Student) (Student, error)
		DeleteStudent(ctx context.Context, id int) error
	}

	// Repositories are bound to a single unit of work.
	Repositories struct {
		Courses  CourseRepository
		Groups   GroupRepository
		Students StudentRepository
	}

	// UnitOfWork runs fn with repositories bound to one transaction.
	// Changes are committed once when fn returns nil, and discarded otherwise
	// (including when fn panics).
	UnitOfWork interface {
		Do(ctx context.Context, fn func(repos Repositories) error) error
	}
)
