package testutil

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

var errAbort = errors.New("abort")

// TestStore checks the behaviour every UnitOfWork implementation must share.
// open must return an empty store.
func TestStore(t *testing.T, open func(t *testing.T) university.UnitOfWork) {
	ctx := context.Background()

	do := func(t *testing.T, uow university.UnitOfWork, fn func(repos university.Repositories) error) {
		t.Helper()
		require.NoError(t, uow.Do(ctx, fn))
	}

	t.Run("empty listings", func(t *testing.T) {
		uow := open(t)
		do(t, uow, func(repos university.Repositories) error {
			courses, err := repos.Courses.QueryCourses(ctx)
			require.NoError(t, err)
			assert.NotNil(t, courses)
			groups, err := repos.Groups.QueryGroups(ctx)
			require.NoError(t, err)
			assert.NotNil(t, groups)
			students, err := repos.Students.QueryStudents(ctx, true)
			require.NoError(t, err)
			assert.NotNil(t, students)
			return nil
		})
	})

	t.Run("seed ids", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)
		do(t, uow, func(repos university.Repositories) error {
			courses, err := repos.Courses.QueryCourses(ctx)
			require.NoError(t, err)
			assert.Equal(t, university.DefaultCourses, courses)

			groups, err := repos.Groups.QueryGroups(ctx)
			require.NoError(t, err)
			require.Len(t, groups, len(FixtureGroups))
			for i, g := range groups {
				want := FixtureGroups[i]
				want.ID = i + 1
				assert.Equal(t, want, g)
			}

			students, err := repos.Students.QueryStudents(ctx, false)
			require.NoError(t, err)
			require.Len(t, students, len(FixtureStudents))
			for i, s := range students {
				want := FixtureStudents[i]
				want.ID = i + 1
				assert.Equal(t, want, s)
			}
			return nil
		})
	})

	t.Run("not found", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)
		do(t, uow, func(repos university.Repositories) error {
			_, err := repos.Courses.GetCourse(ctx, 99)
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Courses.GetCourseWithGroups(ctx, 99)
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Groups.GetGroup(ctx, 99)
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Groups.GetGroupByName(ctx, "XX-99")
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Groups.GetGroupWithStudents(ctx, 99)
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Groups.UpdateGroup(ctx, university.Group{ID: 99, Name: "XX-99"})
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Students.GetStudent(ctx, 99)
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Students.UpdateStudent(ctx, university.Student{ID: 99, FirstName: "A", LastName: "B"})
			assert.ErrorIs(t, err, core.ErrNotFound)
			return nil
		})
	})

	t.Run("children", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)
		do(t, uow, func(repos university.Repositories) error {
			course, err := repos.Courses.GetCourseWithGroups(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, []university.Group{{ID: 13, Name: "SWE-32", CourseID: 2}}, course.Groups)

			grp, err := repos.Groups.GetGroupWithStudents(ctx, 5)
			require.NoError(t, err)
			assert.NotNil(t, grp.Students)
			assert.Empty(t, grp.Students)

			grp, err = repos.Groups.GetGroupWithStudents(ctx, 14)
			require.NoError(t, err)
			assert.Equal(t, []university.Student{{ID: 1, FirstName: "John", LastName: "Doe", GroupID: 14}}, grp.Students)

			has, err := repos.Students.GroupHasStudents(ctx, 14)
			require.NoError(t, err)
			assert.True(t, has)
			has, err = repos.Students.GroupHasStudents(ctx, 5)
			require.NoError(t, err)
			assert.False(t, has)

			students, err := repos.Students.QueryStudents(ctx, true)
			require.NoError(t, err)
			require.Len(t, students, 3)
			require.NotNil(t, students[0].Group)
			assert.Equal(t, "CS-21", students[0].Group.Name)
			assert.Nil(t, students[2].Group)
			return nil
		})
	})

	t.Run("constraints", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)

		tests := []struct {
			name    string
			fn      func(repos university.Repositories) error
			wantErr error
		}{
			{
				name: "duplicate course name",
				fn: func(repos university.Repositories) error {
					_, err := repos.Courses.CreateCourse(ctx, university.Course{Name: "Data Science"})
					return err
				},
			},
			{
				name: "duplicate group",
				fn: func(repos university.Repositories) error {
					_, err := repos.Groups.CreateGroup(ctx, university.Group{Name: "SWE-32", CourseID: 1})
					return err
				},
				wantErr: core.ErrUniqueness,
			},
			{
				name: "rename to existing group",
				fn: func(repos university.Repositories) error {
					_, err := repos.Groups.UpdateGroup(ctx, university.Group{ID: 1, Name: "SWE-32"})
					return err
				},
				wantErr: core.ErrUniqueness,
			},
			{
				name: "group of unknown course",
				fn: func(repos university.Repositories) error {
					_, err := repos.Groups.CreateGroup(ctx, university.Group{Name: "XX-11", CourseID: 99})
					return err
				},
				wantErr: core.ErrReferentialIntegrity,
			},
			{
				name: "student of unknown group",
				fn: func(repos university.Repositories) error {
					_, err := repos.Students.CreateStudent(ctx, university.Student{FirstName: "A", LastName: "B", GroupID: 99})
					return err
				},
				wantErr: core.ErrReferentialIntegrity,
			},
			{
				name: "delete referenced group",
				fn: func(repos university.Repositories) error {
					return repos.Groups.DeleteGroup(ctx, 14)
				},
				wantErr: core.ErrReferentialIntegrity,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := uow.Do(ctx, tt.fn); !errors.Is(err, tt.wantErr) {
					t.Errorf("Do() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("unassign", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)
		do(t, uow, func(repos university.Repositories) error {
			std, err := repos.Students.UpdateStudent(ctx, university.Student{ID: 1, FirstName: "John", LastName: "Doe"})
			require.NoError(t, err)
			assert.Equal(t, university.Unassigned, std.GroupID)
			return repos.Groups.DeleteGroup(ctx, 14)
		})
		do(t, uow, func(repos university.Repositories) error {
			std, err := repos.Students.GetStudent(ctx, 1)
			require.NoError(t, err)
			assert.False(t, std.IsAssigned())
			_, err = repos.Groups.GetGroup(ctx, 14)
			assert.ErrorIs(t, err, core.ErrNotFound)
			return nil
		})
	})

	t.Run("rollback on error", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)

		err := uow.Do(ctx, func(repos university.Repositories) error {
			if _, err := repos.Groups.CreateGroup(ctx, university.Group{Name: "XX-11", CourseID: 1}); err != nil {
				return err
			}
			if err := repos.Students.DeleteStudent(ctx, 1); err != nil {
				return err
			}
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)

		do(t, uow, func(repos university.Repositories) error {
			_, err := repos.Groups.GetGroupByName(ctx, "XX-11")
			assert.ErrorIs(t, err, core.ErrNotFound)
			_, err = repos.Students.GetStudent(ctx, 1)
			assert.NoError(t, err)
			return nil
		})
	})

	t.Run("rollback on panic", func(t *testing.T) {
		uow := open(t)
		SeedUniversity(t, uow)

		assert.Panics(t, func() {
			_ = uow.Do(ctx, func(repos university.Repositories) error {
				if _, err := repos.Courses.CreateCourse(ctx, university.Course{Name: "Alchemy"}); err != nil {
					return err
				}
				panic("boom")
			})
		})

		do(t, uow, func(repos university.Repositories) error {
			courses, err := repos.Courses.QueryCourses(ctx)
			require.NoError(t, err)
			assert.Len(t, courses, len(university.DefaultCourses))
			return nil
		})
	})

	t.Run("canceled context", func(t *testing.T) {
		uow := open(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		called := false
		err := uow.Do(cctx, func(university.Repositories) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}
