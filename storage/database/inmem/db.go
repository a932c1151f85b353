package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/trezcool/unirecords/core/university"
)

type (
	// DB keeps every table in memory.
	// Units of work are serialized and run against a copy of the tables,
	// which replaces the live ones only when the work succeeds.
	DB struct {
		mutex sync.Mutex
		live  *tables
	}

	tables struct {
		course  map[int]university.Course
		group   map[int]university.Group
		student map[int]university.Student

		// primary key counters; ids are never reused
		coursePK, groupPK, studentPK int
	}
)

var _ university.UnitOfWork = (*DB)(nil)

func Open() *DB {
	return &DB{live: &tables{
		course:  make(map[int]university.Course),
		group:   make(map[int]university.Group),
		student: make(map[int]university.Student),
	}}
}

func (t *tables) clone() *tables {
	c := &tables{
		course:    make(map[int]university.Course, len(t.course)),
		group:     make(map[int]university.Group, len(t.group)),
		student:   make(map[int]university.Student, len(t.student)),
		coursePK:  t.coursePK,
		groupPK:   t.groupPK,
		studentPK: t.studentPK,
	}
	for id, row := range t.course {
		c.course[id] = row
	}
	for id, row := range t.group {
		c.group[id] = row
	}
	for id, row := range t.student {
		c.student[id] = row
	}
	return c
}

// Do runs fn against a snapshot of the tables and commits it when fn returns nil.
func (db *DB) Do(ctx context.Context, fn func(repos university.Repositories) error) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := db.live.clone()
	repos := university.Repositories{
		Courses:  &courseRepository{db: snap},
		Groups:   &groupRepository{db: snap},
		Students: &studentRepository{db: snap},
	}
	if err := fn(repos); err != nil {
		return err
	}
	db.live = snap
	return nil
}

func sortedIDs[T any](table map[int]T) []int {
	ids := make([]int, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
