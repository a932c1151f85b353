package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

type studentRepository struct {
	db *tables
}

var _ university.StudentRepository = (*studentRepository)(nil)

func (repo *studentRepository) query(filter func(s university.Student) bool) []university.Student {
	students := make([]university.Student, 0)
	for _, id := range sortedIDs(repo.db.student) {
		if s := repo.db.student[id]; filter == nil || filter(s) {
			students = append(students, s)
		}
	}
	return students
}

func (repo *studentRepository) checkGroup(std university.Student) error {
	if !std.IsAssigned() {
		return nil
	}
	if _, ok := repo.db.group[std.GroupID]; !ok {
		return errors.Wrapf(core.ErrReferentialIntegrity, "student group %d", std.GroupID)
	}
	return nil
}

func (repo *studentRepository) CreateStudent(_ context.Context, std university.Student) (university.Student, error) {
	if err := repo.checkGroup(std); err != nil {
		return university.Student{}, err
	}
	repo.db.studentPK++
	std.ID = repo.db.studentPK
	std.Group = nil
	repo.db.student[std.ID] = std
	return std, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id int) (university.Student, error) {
	if s, ok := repo.db.student[id]; ok {
		return s, nil
	}
	return university.Student{}, errors.Wrapf(core.ErrNotFound, "student %d", id)
}

func (repo *studentRepository) QueryStudents(_ context.Context, withGroup bool) ([]university.Student, error) {
	students := repo.query(nil)
	if withGroup {
		for i, s := range students {
			if g, ok := repo.db.group[s.GroupID]; ok {
				students[i].Group = &g
			}
		}
	}
	return students, nil
}

func (repo *studentRepository) QueryStudentsByGroup(_ context.Context, groupID int) ([]university.Student, error) {
	return repo.query(func(s university.Student) bool { return s.GroupID == groupID }), nil
}

func (repo *studentRepository) GroupHasStudents(_ context.Context, groupID int) (bool, error) {
	for _, s := range repo.db.student {
		if s.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStudent saves the names and the group of the student.
func (repo *studentRepository) UpdateStudent(_ context.Context, std university.Student) (university.Student, error) {
	orig, ok := repo.db.student[std.ID]
	if !ok {
		return university.Student{}, errors.Wrapf(core.ErrNotFound, "student %d", std.ID)
	}
	if err := repo.checkGroup(std); err != nil {
		return university.Student{}, err
	}
	orig.FirstName = std.FirstName
	orig.LastName = std.LastName
	orig.GroupID = std.GroupID
	repo.db.student[orig.ID] = orig
	return orig, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id int) error {
	delete(repo.db.student, id)
	return nil
}
