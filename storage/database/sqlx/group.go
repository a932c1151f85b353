package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

const groupColumns = `id, name, course_id`

type groupRow struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	CourseID int    `db:"course_id"`
}

func (r groupRow) toGroup() university.Group {
	return university.Group{ID: r.ID, Name: r.Name, CourseID: r.CourseID}
}

type groupRepository struct {
	tx *sqlx.Tx
}

var _ university.GroupRepository = (*groupRepository)(nil)

func (repo *groupRepository) get(ctx context.Context, where string, arg interface{}) (university.Group, error) {
	var row groupRow
	q := repo.tx.Rebind(`SELECT ` + groupColumns + ` FROM study_groups WHERE ` + where)
	if err := repo.tx.GetContext(ctx, &row, q, arg); err != nil {
		return university.Group{}, translate(err, "getting group [%v]", arg)
	}
	return row.toGroup(), nil
}

func (repo *groupRepository) query(ctx context.Context, where string, args ...interface{}) ([]university.Group, error) {
	q := `SELECT ` + groupColumns + ` FROM study_groups`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY id`

	var rows []groupRow
	if err := repo.tx.SelectContext(ctx, &rows, repo.tx.Rebind(q), args...); err != nil {
		return nil, translate(err, "querying groups")
	}
	groups := make([]university.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.toGroup())
	}
	return groups, nil
}

func (repo *groupRepository) CreateGroup(ctx context.Context, grp university.Group) (university.Group, error) {
	q := repo.tx.Rebind(`INSERT INTO study_groups (name, course_id) VALUES (?, ?) RETURNING id`)
	if err := repo.tx.QueryRowxContext(ctx, q, grp.Name, grp.CourseID).Scan(&grp.ID); err != nil {
		return university.Group{}, translate(err, "creating group [%s]", grp.Name)
	}
	grp.Students = nil
	return grp, nil
}

func (repo *groupRepository) GetGroup(ctx context.Context, id int) (university.Group, error) {
	return repo.get(ctx, "id = ?", id)
}

func (repo *groupRepository) GetGroupByName(ctx context.Context, name string) (university.Group, error) {
	return repo.get(ctx, "name = ?", name)
}

func (repo *groupRepository) GetGroupWithStudents(ctx context.Context, id int) (university.Group, error) {
	grp, err := repo.GetGroup(ctx, id)
	if err != nil {
		return university.Group{}, err
	}
	students := &studentRepository{tx: repo.tx}
	if grp.Students, err = students.QueryStudentsByGroup(ctx, id); err != nil {
		return university.Group{}, err
	}
	return grp, nil
}

func (repo *groupRepository) QueryGroups(ctx context.Context) ([]university.Group, error) {
	return repo.query(ctx, "")
}

func (repo *groupRepository) QueryGroupsByCourse(ctx context.Context, courseID int) ([]university.Group, error) {
	return repo.query(ctx, "course_id = ?", courseID)
}

// UpdateGroup only saves the name; the course of a group is immutable.
func (repo *groupRepository) UpdateGroup(ctx context.Context, grp university.Group) (university.Group, error) {
	q := repo.tx.Rebind(`UPDATE study_groups SET name = ? WHERE id = ?`)
	res, err := repo.tx.ExecContext(ctx, q, grp.Name, grp.ID)
	if err != nil {
		return university.Group{}, translate(err, "updating group [%d]", grp.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return university.Group{}, errors.Wrapf(core.ErrNotFound, "updating group [%d]", grp.ID)
	}
	return repo.GetGroup(ctx, grp.ID)
}

func (repo *groupRepository) DeleteGroup(ctx context.Context, id int) error {
	q := repo.tx.Rebind(`DELETE FROM study_groups WHERE id = ?`)
	_, err := repo.tx.ExecContext(ctx, q, id)
	return translate(err, "deleting group [%d]", id)
}
