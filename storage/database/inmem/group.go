package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

type groupRepository struct {
	db *tables
}

var _ university.GroupRepository = (*groupRepository)(nil)

func (repo *groupRepository) query(filter func(g university.Group) bool) []university.Group {
	groups := make([]university.Group, 0)
	for _, id := range sortedIDs(repo.db.group) {
		if g := repo.db.group[id]; filter == nil || filter(g) {
			groups = append(groups, g)
		}
	}
	return groups
}

func (repo *groupRepository) checkName(grp university.Group) error {
	for _, g := range repo.db.group {
		if g.Name == grp.Name && g.ID != grp.ID {
			return errors.Wrapf(core.ErrUniqueness, "group name %q", grp.Name)
		}
	}
	return nil
}

func (repo *groupRepository) CreateGroup(_ context.Context, grp university.Group) (university.Group, error) {
	if _, ok := repo.db.course[grp.CourseID]; !ok {
		return university.Group{}, errors.Wrapf(core.ErrReferentialIntegrity, "group course %d", grp.CourseID)
	}
	grp.ID = 0
	if err := repo.checkName(grp); err != nil {
		return university.Group{}, err
	}

	repo.db.groupPK++
	grp.ID = repo.db.groupPK
	grp.Students = nil
	repo.db.group[grp.ID] = grp
	return grp, nil
}

func (repo *groupRepository) GetGroup(_ context.Context, id int) (university.Group, error) {
	if g, ok := repo.db.group[id]; ok {
		return g, nil
	}
	return university.Group{}, errors.Wrapf(core.ErrNotFound, "group %d", id)
}

func (repo *groupRepository) GetGroupByName(_ context.Context, name string) (university.Group, error) {
	for _, g := range repo.query(nil) {
		if g.Name == name {
			return g, nil
		}
	}
	return university.Group{}, errors.Wrapf(core.ErrNotFound, "group %q", name)
}

func (repo *groupRepository) GetGroupWithStudents(ctx context.Context, id int) (university.Group, error) {
	g, err := repo.GetGroup(ctx, id)
	if err != nil {
		return university.Group{}, err
	}
	students := &studentRepository{db: repo.db}
	if g.Students, err = students.QueryStudentsByGroup(ctx, id); err != nil {
		return university.Group{}, err
	}
	return g, nil
}

func (repo *groupRepository) QueryGroups(_ context.Context) ([]university.Group, error) {
	return repo.query(nil), nil
}

func (repo *groupRepository) QueryGroupsByCourse(_ context.Context, courseID int) ([]university.Group, error) {
	return repo.query(func(g university.Group) bool { return g.CourseID == courseID }), nil
}

// UpdateGroup only saves the name; the course of a group is immutable.
func (repo *groupRepository) UpdateGroup(_ context.Context, grp university.Group) (university.Group, error) {
	orig, ok := repo.db.group[grp.ID]
	if !ok {
		return university.Group{}, errors.Wrapf(core.ErrNotFound, "group %d", grp.ID)
	}
	if err := repo.checkName(grp); err != nil {
		return university.Group{}, err
	}
	orig.Name = grp.Name
	repo.db.group[orig.ID] = orig
	return orig, nil
}

func (repo *groupRepository) DeleteGroup(_ context.Context, id int) error {
	for _, s := range repo.db.student {
		if s.GroupID == id {
			return errors.Wrapf(core.ErrReferentialIntegrity, "group %d has students", id)
		}
	}
	delete(repo.db.group, id)
	return nil
}
