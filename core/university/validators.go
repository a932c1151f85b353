package university

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
)

// Validator holds the precondition checks of every use case.
// Checks never touch the store: they only look at their input.
// Each failure is logged once and returned as a *core.Error.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

// NewValidator expects validate and translator to be set up by core.InitValidators.
func NewValidator(validate *validator.Validate, translator ut.Translator, logger core.Logger) *Validator {
	vala.BeginValidation().Validate(
		vala.IsNotNil(validate, "validate"),
		vala.IsNotNil(translator, "translator"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &Validator{
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

func (v *Validator) fail(kind error, op, logMsg, format string, args ...interface{}) error {
	v.logger.Error(fmt.Sprintf("Error in %s: %s", op, logMsg))
	return core.NewError(kind, op, format, args...)
}

// checkStruct runs the `validate` struct tags of dto.
func (v *Validator) checkStruct(op string, dto interface{}, logMsg, msg string) error {
	err := v.validate.Struct(dto)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating "+op)
	}
	flds := core.FieldErrors(vErrs, v.translator)
	v.logger.Error(fmt.Sprintf("Error in %s: %s", op, logMsg), flds)
	return &core.Error{Kind: core.ErrValidation, Op: op, Message: msg, Fields: flds}
}

// GetByID fails when id is unset.
func (v *Validator) GetByID(op, entity string, id int) error {
	if id == 0 {
		return v.fail(core.ErrNotFound, op,
			fmt.Sprintf("fetching %s by Id [%d]", entity, id),
			"There is no %s with Id [%d].", entity, id)
	}
	return nil
}

// GetAll fails when the collection was not loaded. A loaded but empty collection is fine.
func (v *Validator) GetAll(op, entity string, loaded bool) error {
	if !loaded {
		return v.fail(core.ErrNotFound, op,
			fmt.Sprintf("fetching all %ss", entity),
			"Failed to retrieve %s list.", entity)
	}
	return nil
}

// Course

func (v *Validator) CreateCourse(dto CourseDto) error {
	return v.checkStruct("CourseService.Create", dto,
		"new course name is null or empty",
		"New course name is null or empty.")
}

// Group

func (v *Validator) UpdateGroup(dto GroupDto) error {
	op := "GroupService.Update"
	if dto.ID == 0 {
		return v.fail(core.ErrNotFound, op,
			fmt.Sprintf("fetching group with Id [%d]", dto.ID),
			"There is no group with Id [%d].", dto.ID)
	}
	return v.checkStruct(op, dto,
		fmt.Sprintf("new group name is null or empty for group with Id [%d]", dto.ID),
		fmt.Sprintf("New group name is null or empty for group with Id [%d].", dto.ID))
}

func (v *Validator) CreateGroup(dto GroupDto) error {
	op := "GroupService.Create"
	if dto.CourseID == 0 {
		return v.fail(core.ErrNotFound, op,
			fmt.Sprintf("fetching course with Id [%d]", dto.CourseID),
			"There is no course with Id [%d].", dto.CourseID)
	}
	return v.checkStruct(op, dto,
		"new group name is null or empty",
		"New group name is null or empty.")
}

func (v *Validator) DeleteGroup(dto GroupDto) error {
	op := "GroupService.Delete"
	if dto.ID == 0 {
		return v.fail(core.ErrNotFound, op,
			fmt.Sprintf("fetching group with Id [%d]", dto.ID),
			"There is no group with Id [%d].", dto.ID)
	}
	return nil
}

// Student

func (v *Validator) UpdateStudent(dto StudentDto) error {
	op := "StudentService.Update"
	if dto.ID == 0 {
		return v.fail(core.ErrNotFound, op,
			fmt.Sprintf("fetching student by Id [%d]", dto.ID),
			"There is no student with Id [%d].", dto.ID)
	}
	return v.checkStruct(op, dto,
		"updating student first/last name",
		"First and last name are required to complete operation.")
}

func (v *Validator) CreateStudent(dto StudentDto) error {
	return v.checkStruct("StudentService.Create", dto,
		"creating new student",
		"First and last name are required to complete operation.")
}

func (v *Validator) DeleteStudent(dto StudentDto) error {
	if dto.ID == 0 {
		return v.fail(core.ErrNotFound, "StudentService.Delete",
			"deleting student without Id",
			"Student Id cannot be empty for delete operation.")
	}
	return nil
}

// StudentGroupOperation checks adding a student to, or removing a student from, a group.
func (v *Validator) StudentGroupOperation(op string, dto StudentDto) error {
	if dto.ID == 0 {
		return v.fail(core.ErrNotFound, op,
			"changing group of student without Id",
			"Student Id cannot be empty for this operation.")
	}
	return nil
}
