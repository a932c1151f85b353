package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/kat-co/vala"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

// postgres error codes
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// UnitOfWork runs every call in its own transaction.
type UnitOfWork struct {
	db *sqlx.DB
}

var _ university.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	vala.BeginValidation().Validate(
		vala.IsNotNil(db, "db"),
	).CheckAndPanic()

	return &UnitOfWork{db: db}
}

func (uow *UnitOfWork) Do(ctx context.Context, fn func(repos university.Repositories) error) error {
	tx, err := uow.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	// no-op once committed
	defer func() { _ = tx.Rollback() }()

	repos := university.Repositories{
		Courses:  &courseRepository{tx: tx},
		Groups:   &groupRepository{tx: tx},
		Students: &studentRepository{tx: tx},
	}
	if err = fn(repos); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// translate maps driver errors onto core error kinds, whatever the driver.
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)

	var (
		pqErr     *pq.Error
		pgErr     *pgconn.PgError
		sqliteErr *sqlite.Error
		code      string
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return errors.Wrap(core.ErrNotFound, msg)
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &sqliteErr):
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			code = uniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			code = foreignKeyViolation
		}
	}

	switch code {
	case uniqueViolation:
		return errors.Wrapf(core.ErrUniqueness, "%s: %v", msg, err)
	case foreignKeyViolation:
		return errors.Wrapf(core.ErrReferentialIntegrity, "%s: %v", msg, err)
	}
	return errors.Wrap(err, msg)
}
