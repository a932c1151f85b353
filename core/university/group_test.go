package university_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	"github.com/trezcool/unirecords/tests"
)

func TestGroupService_GetByID(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name    string
		id      int
		want    university.GroupDto
		wantErr error
	}{
		{name: "unset id", id: 0, wantErr: core.ErrNotFound},
		{name: "unknown id", id: 99, wantErr: core.ErrNotFound},
		{name: "seeded group", id: 13, want: university.GroupDto{ID: 13, Name: "SWE-32", CourseID: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.groups.GetByID(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupService_GetAll(t *testing.T) {
	t.Run("seeded groups", func(t *testing.T) {
		svc := setup(t)
		got, err := svc.groups.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, got, len(testutil.FixtureGroups))
		for i, g := range got {
			assert.Equal(t, i+1, g.ID)
			assert.Equal(t, testutil.FixtureGroups[i].Name, g.Name)
		}
	})

	t.Run("unloaded", func(t *testing.T) {
		svc := newServices(unloadedStore{})
		_, err := svc.groups.GetAll(context.Background())
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestGroupService_QueryByCourse(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	robotics, err := svc.courses.Create(ctx, university.CourseDto{Name: "Robotics"})
	require.NoError(t, err)

	got, err := svc.groups.QueryByCourse(ctx, robotics.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = svc.groups.QueryByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []university.GroupDto{{ID: 13, Name: "SWE-32", CourseID: 2}}, got)

	_, err = svc.groups.QueryByCourse(ctx, 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGroupService_GetStudentsByGroupID(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name    string
		groupID int
		want    []university.StudentDto
		wantErr error
	}{
		{name: "unset id", groupID: 0, wantErr: core.ErrNotFound},
		{name: "unknown group", groupID: 99, wantErr: core.ErrNotFound},
		{name: "group without students", groupID: 5, wantErr: core.ErrEmptyResult},
		{
			name:    "group with students",
			groupID: 14,
			want:    []university.StudentDto{{ID: 1, FirstName: "John", LastName: "Doe", GroupID: 14}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.groups.GetStudentsByGroupID(context.Background(), tt.groupID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetStudentsByGroupID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		dto     university.GroupDto
		want    university.GroupDto
		wantErr error
	}{
		{name: "unset course", dto: university.GroupDto{Name: "SWE-33"}, wantErr: core.ErrNotFound},
		{name: "unknown course", dto: university.GroupDto{Name: "SWE-33", CourseID: 42}, wantErr: core.ErrNotFound},
		{name: "empty name", dto: university.GroupDto{CourseID: 2}, wantErr: core.ErrValidation},
		{name: "whitespace name", dto: university.GroupDto{Name: " \t ", CourseID: 2}, wantErr: core.ErrValidation},
		{name: "existing name", dto: university.GroupDto{Name: "SWE-32", CourseID: 2}, wantErr: core.ErrUniqueness},
		{name: "existing name in another course", dto: university.GroupDto{Name: "DS-11", CourseID: 2}, wantErr: core.ErrUniqueness},
		{
			name: "valid",
			dto:  university.GroupDto{ID: 7, Name: " SWE-33 ", CourseID: 2},
			want: university.GroupDto{ID: len(testutil.FixtureGroups) + 1, Name: "SWE-33", CourseID: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.groups.Create(ctx, tt.dto)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
			if tt.wantErr == nil {
				persisted, err := svc.groups.GetByID(ctx, got.ID)
				require.NoError(t, err)
				assert.Equal(t, got, persisted)
			}
		})
	}

	groups, err := svc.groups.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, len(testutil.FixtureGroups)+1)
}

func TestGroupService_Create_UniquenessError(t *testing.T) {
	svc := setup(t)

	_, err := svc.groups.Create(context.Background(), university.GroupDto{Name: "SWE-32", CourseID: 2})
	var e *core.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "GroupService.Create", e.Op)
	assert.Equal(t, []core.FieldError{{Field: "name", Error: e.Message}}, e.Fields)
}

func TestGroupService_Update(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		dto     university.GroupDto
		want    university.GroupDto
		wantErr error
	}{
		{name: "unset id", dto: university.GroupDto{Name: "SWE-99"}, wantErr: core.ErrNotFound},
		{name: "unknown group", dto: university.GroupDto{ID: 99, Name: "SWE-99"}, wantErr: core.ErrNotFound},
		{name: "blank name", dto: university.GroupDto{ID: 13, Name: "   "}, wantErr: core.ErrValidation},
		{name: "name of another group", dto: university.GroupDto{ID: 13, Name: "SE-11"}, wantErr: core.ErrUniqueness},
		{name: "same name", dto: university.GroupDto{ID: 13, Name: "SWE-32"}, want: university.GroupDto{ID: 13, Name: "SWE-32", CourseID: 2}},
		{
			name: "course is ignored",
			dto:  university.GroupDto{ID: 13, Name: "SWE-42", CourseID: 5},
			want: university.GroupDto{ID: 13, Name: "SWE-42", CourseID: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.groups.Update(ctx, tt.dto)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	persisted, err := svc.groups.GetByID(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, "SWE-42", persisted.Name)
}

func TestGroupService_Delete(t *testing.T) {
	t.Run("group without students", func(t *testing.T) {
		svc := setup(t)
		ctx := context.Background()

		require.NoError(t, svc.groups.Delete(ctx, university.GroupDto{ID: 5}))

		_, err := svc.groups.GetByID(ctx, 5)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("group with a student", func(t *testing.T) {
		svc := setup(t)
		ctx := context.Background()

		err := svc.groups.Delete(ctx, university.GroupDto{ID: 14})
		assert.ErrorIs(t, err, core.ErrReferentialIntegrity)

		got, err := svc.groups.GetByID(ctx, 14)
		require.NoError(t, err)
		assert.Equal(t, 14, got.ID)
	})

	t.Run("every group with students", func(t *testing.T) {
		svc := setup(t)
		ctx := context.Background()
		taken := make(map[int]bool)
		for _, s := range testutil.FixtureStudents {
			taken[s.GroupID] = true
		}

		for id := 1; id <= len(testutil.FixtureGroups); id++ {
			err := svc.groups.Delete(ctx, university.GroupDto{ID: id})
			if taken[id] {
				assert.ErrorIs(t, err, core.ErrReferentialIntegrity, "group %d", id)
				continue
			}
			assert.NoError(t, err, "group %d", id)
			_, err = svc.groups.GetByID(ctx, id)
			assert.ErrorIs(t, err, core.ErrNotFound, "group %d", id)
		}
	})

	t.Run("unset or unknown id", func(t *testing.T) {
		svc := setup(t)
		assert.ErrorIs(t, svc.groups.Delete(context.Background(), university.GroupDto{}), core.ErrNotFound)
		assert.ErrorIs(t, svc.groups.Delete(context.Background(), university.GroupDto{ID: 99}), core.ErrNotFound)
	})

	t.Run("after the last student leaves", func(t *testing.T) {
		svc := setup(t)
		ctx := context.Background()

		_, err := svc.students.RemoveFromGroup(ctx, university.StudentDto{ID: 1})
		require.NoError(t, err)
		assert.NoError(t, svc.groups.Delete(ctx, university.GroupDto{ID: 14}))
	})
}
