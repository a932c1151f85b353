package university_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	"github.com/trezcool/unirecords/storage/database/inmem"
)

func TestCourseService_GetByID(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name    string
		id      int
		want    university.CourseDto
		wantErr error
	}{
		{name: "unset id", id: 0, wantErr: core.ErrNotFound},
		{name: "unknown id", id: 42, wantErr: core.ErrNotFound},
		{name: "seeded course", id: 2, want: university.CourseDto{ID: 2, Name: "Software Engineer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.courses.GetByID(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseService_GetAll(t *testing.T) {
	t.Run("seeded courses", func(t *testing.T) {
		svc := setup(t)
		got, err := svc.courses.GetAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, university.NewCourseDtos(university.DefaultCourses), got)
	})

	t.Run("empty store", func(t *testing.T) {
		svc := newServices(inmemdb.Open())
		got, err := svc.courses.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unloaded", func(t *testing.T) {
		svc := newServices(unloadedStore{})
		_, err := svc.courses.GetAll(context.Background())
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestCourseService_GetGroupsByCourseID(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	// a course without groups
	newCourse, err := svc.courses.Create(ctx, university.CourseDto{Name: "Robotics"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		courseID  int
		wantNames []string
		wantErr   error
	}{
		{name: "unset id", courseID: 0, wantErr: core.ErrNotFound},
		{name: "unknown course", courseID: 42, wantErr: core.ErrNotFound},
		{name: "course without groups", courseID: newCourse.ID, wantErr: core.ErrEmptyResult},
		{name: "software engineer", courseID: 2, wantNames: []string{"SWE-32"}},
		{name: "data science", courseID: 3, wantNames: []string{"DS-11", "DS-12", "DS-21"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.courses.GetGroupsByCourseID(ctx, tt.courseID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetGroupsByCourseID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			names := make([]string, 0, len(got))
			for _, g := range got {
				assert.Equal(t, tt.courseID, g.CourseID)
				names = append(names, g.Name)
			}
			if tt.wantErr == nil {
				assert.Equal(t, tt.wantNames, names)
			}
		})
	}

	t.Run("returned group", func(t *testing.T) {
		got, err := svc.courses.GetGroupsByCourseID(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, university.GroupDto{ID: 13, Name: "SWE-32", CourseID: 2}, got[0])
	})
}

func TestCourseService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		dto      university.CourseDto
		wantName string
		wantErr  error
	}{
		{name: "blank name", dto: university.CourseDto{Name: "  "}, wantErr: core.ErrValidation},
		{name: "empty name", dto: university.CourseDto{}, wantErr: core.ErrValidation},
		{name: "existing name", dto: university.CourseDto{Name: "Data Science"}, wantName: "Data Science"},
		{name: "valid", dto: university.CourseDto{Name: " Robotics "}, wantName: "Robotics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.courses.Create(ctx, tt.dto)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}
			assert.Equal(t, tt.wantName, got.Name)
			persisted, err := svc.courses.GetByID(ctx, got.ID)
			require.NoError(t, err)
			assert.Equal(t, got, persisted)
		})
	}
}
