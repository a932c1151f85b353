package sqlxrepos

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	"github.com/trezcool/unirecords/tests"
)

func TestUnitOfWork(t *testing.T) {
	testutil.TestStore(t, func(t *testing.T) university.UnitOfWork {
		return NewUnitOfWork(testutil.OpenSQLite(t))
	})
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil, "noop"))

	other := errors.New("connection reset")
	err := translate(other, "querying")
	assert.ErrorIs(t, err, other)
	assert.Nil(t, core.KindOf(err))
	assert.Equal(t, "querying: connection reset", err.Error())
}

func TestTranslate_constraints(t *testing.T) {
	db := testutil.OpenSQLite(t)
	_, err := db.Exec(`INSERT INTO courses (name) VALUES ('System Engineer')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO study_groups (name, course_id) VALUES ('SE-11', 1)`)
	require.NoError(t, err)

	_, duplicate := db.Exec(`INSERT INTO study_groups (name, course_id) VALUES ('SE-11', 1)`)
	_, unknownCourse := db.Exec(`INSERT INTO study_groups (name, course_id) VALUES ('SE-12', 99)`)

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "sqlite unique", err: duplicate, wantErr: core.ErrUniqueness},
		{name: "sqlite foreign key", err: unknownCourse, wantErr: core.ErrReferentialIntegrity},
		{name: "pq unique", err: &pq.Error{Code: uniqueViolation}, wantErr: core.ErrUniqueness},
		{name: "pq foreign key", err: &pq.Error{Code: foreignKeyViolation}, wantErr: core.ErrReferentialIntegrity},
		{name: "pgx unique", err: &pgconn.PgError{Code: uniqueViolation}, wantErr: core.ErrUniqueness},
		{name: "pgx foreign key", err: &pgconn.PgError{Code: foreignKeyViolation}, wantErr: core.ErrReferentialIntegrity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			if err := translate(tt.err, "inserting"); !errors.Is(err, tt.wantErr) {
				t.Errorf("translate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
