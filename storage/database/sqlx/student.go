package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

const studentColumns = `s.id, s.first_name, s.last_name, s.group_id`

type studentRow struct {
	ID        int         `db:"id"`
	FirstName string      `db:"first_name"`
	LastName  string      `db:"last_name"`
	GroupID   null.Int    `db:"group_id"`
	GroupName null.String `db:"group_name"`
}

func (r studentRow) toStudent() university.Student {
	std := university.Student{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		GroupID:   university.Unassigned,
	}
	if r.GroupID.Valid {
		std.GroupID = r.GroupID.Int
	}
	if r.GroupName.Valid {
		std.Group = &university.Group{ID: std.GroupID, Name: r.GroupName.String}
	}
	return std
}

// nullGroupID maps Unassigned to NULL.
func nullGroupID(std university.Student) null.Int {
	return null.NewInt(std.GroupID, std.IsAssigned())
}

type studentRepository struct {
	tx *sqlx.Tx
}

var _ university.StudentRepository = (*studentRepository)(nil)

func (repo *studentRepository) query(ctx context.Context, q string, args ...interface{}) ([]university.Student, error) {
	var rows []studentRow
	if err := repo.tx.SelectContext(ctx, &rows, repo.tx.Rebind(q), args...); err != nil {
		return nil, translate(err, "querying students")
	}
	students := make([]university.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std university.Student) (university.Student, error) {
	q := repo.tx.Rebind(`INSERT INTO students (first_name, last_name, group_id) VALUES (?, ?, ?) RETURNING id`)
	if err := repo.tx.QueryRowxContext(ctx, q, std.FirstName, std.LastName, nullGroupID(std)).Scan(&std.ID); err != nil {
		return university.Student{}, translate(err, "creating student [%s %s]", std.FirstName, std.LastName)
	}
	std.Group = nil
	return std, nil
}

func (repo *studentRepository) GetStudent(ctx context.Context, id int) (university.Student, error) {
	var row studentRow
	q := repo.tx.Rebind(`SELECT ` + studentColumns + ` FROM students s WHERE s.id = ?`)
	if err := repo.tx.GetContext(ctx, &row, q, id); err != nil {
		return university.Student{}, translate(err, "getting student [%d]", id)
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, withGroup bool) ([]university.Student, error) {
	if withGroup {
		return repo.query(ctx, `SELECT `+studentColumns+`, g.name AS group_name
			FROM students s LEFT JOIN study_groups g ON g.id = s.group_id
			ORDER BY s.id`)
	}
	return repo.query(ctx, `SELECT `+studentColumns+` FROM students s ORDER BY s.id`)
}

func (repo *studentRepository) QueryStudentsByGroup(ctx context.Context, groupID int) ([]university.Student, error) {
	return repo.query(ctx, `SELECT `+studentColumns+` FROM students s WHERE s.group_id = ? ORDER BY s.id`, groupID)
}

func (repo *studentRepository) GroupHasStudents(ctx context.Context, groupID int) (bool, error) {
	var exists bool
	q := repo.tx.Rebind(`SELECT EXISTS (SELECT 1 FROM students WHERE group_id = ?)`)
	if err := repo.tx.GetContext(ctx, &exists, q, groupID); err != nil {
		return false, translate(err, "checking students of group [%d]", groupID)
	}
	return exists, nil
}

// UpdateStudent saves the names and the group of the student.
func (repo *studentRepository) UpdateStudent(ctx context.Context, std university.Student) (university.Student, error) {
	q := repo.tx.Rebind(`UPDATE students SET first_name = ?, last_name = ?, group_id = ? WHERE id = ?`)
	res, err := repo.tx.ExecContext(ctx, q, std.FirstName, std.LastName, nullGroupID(std), std.ID)
	if err != nil {
		return university.Student{}, translate(err, "updating student [%d]", std.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return university.Student{}, errors.Wrapf(core.ErrNotFound, "updating student [%d]", std.ID)
	}
	return repo.GetStudent(ctx, std.ID)
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id int) error {
	q := repo.tx.Rebind(`DELETE FROM students WHERE id = ?`)
	_, err := repo.tx.ExecContext(ctx, q, id)
	return translate(err, "deleting student [%d]", id)
}
