package university

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
)

type StudentService struct {
	service
}

func NewStudentService(uow UnitOfWork, validator *Validator, logger core.Logger) *StudentService {
	return &StudentService{service: newService(uow, validator, logger)}
}

func (svc *StudentService) GetByID(ctx context.Context, id int) (StudentDto, error) {
	const op = "StudentService.GetByID"
	if err := svc.validator.GetByID(op, "student", id); err != nil {
		return StudentDto{}, err
	}

	var std Student
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if std, err = repos.Students.GetStudent(ctx, id); err != nil {
			return svc.lookup(err, op, "student", id)
		}
		return nil
	})
	if err != nil {
		return StudentDto{}, err
	}
	return NewStudentDto(std), nil
}

func (svc *StudentService) GetAll(ctx context.Context) ([]StudentDto, error) {
	return svc.getAll(ctx, "StudentService.GetAll", false)
}

// GetAllWithGroup is GetAll with the group name of assigned students filled in.
func (svc *StudentService) GetAllWithGroup(ctx context.Context) ([]StudentDto, error) {
	return svc.getAll(ctx, "StudentService.GetAllWithGroup", true)
}

func (svc *StudentService) getAll(ctx context.Context, op string, withGroup bool) ([]StudentDto, error) {
	var students []Student
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		students, err = repos.Students.QueryStudents(ctx, withGroup)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return nil, err
	}
	if err := svc.validator.GetAll(op, "student", students != nil); err != nil {
		return nil, err
	}
	return NewStudentDtos(students), nil
}

// GetByGroupID fails with core.ErrNotFound when the group does not exist,
// and with core.ErrEmptyResult when it has no students.
func (svc *StudentService) GetByGroupID(ctx context.Context, groupID int) ([]StudentDto, error) {
	const op = "StudentService.GetByGroupID"
	if err := svc.validator.GetByID(op, "group", groupID); err != nil {
		return nil, err
	}

	var students []Student
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Groups.GetGroup(ctx, groupID); err != nil {
			return svc.lookup(err, op, "group", groupID)
		}
		var err error
		students, err = repos.Students.QueryStudentsByGroup(ctx, groupID)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, svc.fail(core.ErrEmptyResult, op, "There are no students in group with Id [%d].", groupID)
	}
	return NewStudentDtos(students), nil
}

// Update overwrites the names of a student. Group membership is left untouched.
func (svc *StudentService) Update(ctx context.Context, dto StudentDto) (StudentDto, error) {
	const op = "StudentService.Update"
	dto.FirstName = core.CleanString(dto.FirstName)
	dto.LastName = core.CleanString(dto.LastName)
	if err := svc.validator.UpdateStudent(dto); err != nil {
		return StudentDto{}, err
	}

	var std Student
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if std, err = repos.Students.GetStudent(ctx, dto.ID); err != nil {
			return svc.lookup(err, op, "student", dto.ID)
		}
		std.FirstName = dto.FirstName
		std.LastName = dto.LastName
		std, err = repos.Students.UpdateStudent(ctx, std)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return StudentDto{}, err
	}

	svc.logger.Info(fmt.Sprintf("Student with Id [%d] updated.", std.ID))
	return NewStudentDto(std), nil
}

// Create inserts an unassigned student, whatever GroupID the dto carries.
func (svc *StudentService) Create(ctx context.Context, dto StudentDto) (StudentDto, error) {
	const op = "StudentService.Create"
	dto.FirstName = core.CleanString(dto.FirstName)
	dto.LastName = core.CleanString(dto.LastName)
	if err := svc.validator.CreateStudent(dto); err != nil {
		return StudentDto{}, err
	}

	var std Student
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		std, err = repos.Students.CreateStudent(ctx, Student{
			FirstName: dto.FirstName,
			LastName:  dto.LastName,
			GroupID:   Unassigned,
		})
		return errors.Wrap(err, op)
	})
	if err != nil {
		return StudentDto{}, err
	}

	svc.logger.Info(fmt.Sprintf("Student [%s %s] created with Id [%d].", std.FirstName, std.LastName, std.ID))
	return NewStudentDto(std), nil
}

func (svc *StudentService) Delete(ctx context.Context, dto StudentDto) error {
	const op = "StudentService.Delete"
	if err := svc.validator.DeleteStudent(dto); err != nil {
		return err
	}

	err := svc.uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Students.GetStudent(ctx, dto.ID); err != nil {
			return svc.lookup(err, op, "student", dto.ID)
		}
		return errors.Wrap(repos.Students.DeleteStudent(ctx, dto.ID), op)
	})
	if err != nil {
		return err
	}

	svc.logger.Info(fmt.Sprintf("Student with Id [%d] deleted.", dto.ID))
	return nil
}

// AddToGroup assigns an unassigned student to dto.GroupID.
// A student already in a group must be removed from it first.
func (svc *StudentService) AddToGroup(ctx context.Context, dto StudentDto) (StudentDto, error) {
	const op = "StudentService.AddToGroup"
	if err := svc.validator.StudentGroupOperation(op, dto); err != nil {
		return StudentDto{}, err
	}
	if err := svc.validator.GetByID(op, "group", dto.GroupID); err != nil {
		return StudentDto{}, err
	}

	var std Student
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if std, err = repos.Students.GetStudent(ctx, dto.ID); err != nil {
			return svc.lookup(err, op, "student", dto.ID)
		}
		if std.IsAssigned() {
			return svc.fail(core.ErrIllegalState, op,
				"Student with Id [%d] already belongs to group with Id [%d].", std.ID, std.GroupID)
		}
		if _, err = repos.Groups.GetGroup(ctx, dto.GroupID); err != nil {
			return svc.lookup(err, op, "group", dto.GroupID)
		}
		std.GroupID = dto.GroupID
		std, err = repos.Students.UpdateStudent(ctx, std)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return StudentDto{}, err
	}

	svc.logger.Info(fmt.Sprintf("Student with Id [%d] added to group with Id [%d].", std.ID, std.GroupID))
	return NewStudentDto(std), nil
}

// RemoveFromGroup unassigns a student. Removing an unassigned student is a no-op.
func (svc *StudentService) RemoveFromGroup(ctx context.Context, dto StudentDto) (StudentDto, error) {
	const op = "StudentService.RemoveFromGroup"
	if err := svc.validator.StudentGroupOperation(op, dto); err != nil {
		return StudentDto{}, err
	}

	var (
		std     Student
		removed bool
	)
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if std, err = repos.Students.GetStudent(ctx, dto.ID); err != nil {
			return svc.lookup(err, op, "student", dto.ID)
		}
		if !std.IsAssigned() {
			return nil
		}
		std.GroupID = Unassigned
		std, err = repos.Students.UpdateStudent(ctx, std)
		removed = err == nil
		return errors.Wrap(err, op)
	})
	if err != nil {
		return StudentDto{}, err
	}
	if !removed {
		return NewStudentDto(std), nil
	}

	svc.logger.Info(fmt.Sprintf("Student with Id [%d] removed from its group.", std.ID))
	return NewStudentDto(std), nil
}
