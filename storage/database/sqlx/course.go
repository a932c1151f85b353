package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/unirecords/core/university"
)

type courseRow struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

func (r courseRow) toCourse() university.Course {
	return university.Course{ID: r.ID, Name: r.Name}
}

type courseRepository struct {
	tx *sqlx.Tx
}

var _ university.CourseRepository = (*courseRepository)(nil)

func (repo *courseRepository) get(ctx context.Context, where string, arg interface{}) (university.Course, error) {
	var row courseRow
	q := repo.tx.Rebind(`SELECT id, name FROM courses WHERE ` + where)
	if err := repo.tx.GetContext(ctx, &row, q, arg); err != nil {
		return university.Course{}, translate(err, "getting course [%v]", arg)
	}
	return row.toCourse(), nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, course university.Course) (university.Course, error) {
	q := repo.tx.Rebind(`INSERT INTO courses (name) VALUES (?) RETURNING id`)
	if err := repo.tx.QueryRowxContext(ctx, q, course.Name).Scan(&course.ID); err != nil {
		return university.Course{}, translate(err, "creating course [%s]", course.Name)
	}
	course.Groups = nil
	return course, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, id int) (university.Course, error) {
	return repo.get(ctx, "id = ?", id)
}

func (repo *courseRepository) GetCourseWithGroups(ctx context.Context, id int) (university.Course, error) {
	course, err := repo.GetCourse(ctx, id)
	if err != nil {
		return university.Course{}, err
	}
	groups := &groupRepository{tx: repo.tx}
	if course.Groups, err = groups.QueryGroupsByCourse(ctx, id); err != nil {
		return university.Course{}, err
	}
	return course, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context) ([]university.Course, error) {
	var rows []courseRow
	if err := repo.tx.SelectContext(ctx, &rows, `SELECT id, name FROM courses ORDER BY id`); err != nil {
		return nil, translate(err, "querying courses")
	}
	courses := make([]university.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toCourse())
	}
	return courses, nil
}
