package university

import (
	"fmt"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
)

// service holds what every university service needs.
type service struct {
	uow       UnitOfWork
	validator *Validator
	logger    core.Logger
}

func newService(uow UnitOfWork, validator *Validator, logger core.Logger) service {
	// vala cannot tell whether a value type is nil
	if uow == nil {
		panic("parameter uow is nil")
	}
	vala.BeginValidation().Validate(
		vala.IsNotNil(validator, "validator"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return service{uow: uow, validator: validator, logger: logger}
}

// fail logs a business-rule failure and returns it.
func (s service) fail(kind error, op, format string, args ...interface{}) error {
	err := core.NewError(kind, op, format, args...)
	s.logger.Error(fmt.Sprintf("Error in %s: %s", op, err))
	return err
}

// lookup translates a repository lookup error.
// A missing record becomes a NotFound failure, anything else is wrapped as is.
func (s service) lookup(err error, op, entity string, id int) error {
	if errors.Is(err, core.ErrNotFound) {
		return s.fail(core.ErrNotFound, op, "There is no %s with Id [%d].", entity, id)
	}
	return errors.Wrapf(err, "%s: fetching %s [%d]", op, entity, id)
}
