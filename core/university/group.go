package university

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/unirecords/core"
)

type GroupService struct {
	service
}

func NewGroupService(uow UnitOfWork, validator *Validator, logger core.Logger) *GroupService {
	return &GroupService{service: newService(uow, validator, logger)}
}

// checkUniqueness fails when another group than excludedID is named name.
func (svc *GroupService) checkUniqueness(ctx context.Context, repo GroupRepository, op, name string, excludedID int) error {
	grp, err := repo.GetGroupByName(ctx, name)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil
	case err != nil:
		return errors.Wrap(err, op)
	case grp.ID == excludedID:
		return nil
	}
	msg := fmt.Sprintf("Group with name [%s] already exists.", name)
	svc.logger.Error(fmt.Sprintf("Error in %s: %s", op, msg))
	return &core.Error{
		Kind:    core.ErrUniqueness,
		Op:      op,
		Message: msg,
		Fields:  []core.FieldError{{Field: "name", Error: msg}},
	}
}

func (svc *GroupService) GetByID(ctx context.Context, id int) (GroupDto, error) {
	const op = "GroupService.GetByID"
	if err := svc.validator.GetByID(op, "group", id); err != nil {
		return GroupDto{}, err
	}

	var grp Group
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if grp, err = repos.Groups.GetGroup(ctx, id); err != nil {
			return svc.lookup(err, op, "group", id)
		}
		return nil
	})
	if err != nil {
		return GroupDto{}, err
	}
	return NewGroupDto(grp), nil
}

func (svc *GroupService) GetAll(ctx context.Context) ([]GroupDto, error) {
	const op = "GroupService.GetAll"
	var groups []Group
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		groups, err = repos.Groups.QueryGroups(ctx)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return nil, err
	}
	if err := svc.validator.GetAll(op, "group", groups != nil); err != nil {
		return nil, err
	}
	return NewGroupDtos(groups), nil
}

// QueryByCourse returns the groups of a course. Unlike CourseService.GetGroupsByCourseID,
// a course without groups yields an empty list.
func (svc *GroupService) QueryByCourse(ctx context.Context, courseID int) ([]GroupDto, error) {
	const op = "GroupService.QueryByCourse"
	if err := svc.validator.GetByID(op, "course", courseID); err != nil {
		return nil, err
	}

	var groups []Group
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Courses.GetCourse(ctx, courseID); err != nil {
			return svc.lookup(err, op, "course", courseID)
		}
		var err error
		groups, err = repos.Groups.QueryGroupsByCourse(ctx, courseID)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return nil, err
	}
	return NewGroupDtos(groups), nil
}

// GetStudentsByGroupID fails with core.ErrNotFound when the group does not exist,
// and with core.ErrEmptyResult when it has no students.
func (svc *GroupService) GetStudentsByGroupID(ctx context.Context, groupID int) ([]StudentDto, error) {
	const op = "GroupService.GetStudentsByGroupID"
	if err := svc.validator.GetByID(op, "group", groupID); err != nil {
		return nil, err
	}

	var grp Group
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if grp, err = repos.Groups.GetGroupWithStudents(ctx, groupID); err != nil {
			return svc.lookup(err, op, "group", groupID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(grp.Students) == 0 {
		return nil, svc.fail(core.ErrEmptyResult, op, "There are no students in group with Id [%d].", groupID)
	}
	return NewStudentDtos(grp.Students), nil
}

// Update renames a group. The course of a group never changes.
func (svc *GroupService) Update(ctx context.Context, dto GroupDto) (GroupDto, error) {
	const op = "GroupService.Update"
	dto.Name = core.CleanString(dto.Name)
	if err := svc.validator.UpdateGroup(dto); err != nil {
		return GroupDto{}, err
	}

	var grp Group
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		var err error
		if grp, err = repos.Groups.GetGroup(ctx, dto.ID); err != nil {
			return svc.lookup(err, op, "group", dto.ID)
		}
		if err = svc.checkUniqueness(ctx, repos.Groups, op, dto.Name, grp.ID); err != nil {
			return err
		}
		grp.Name = dto.Name
		grp, err = repos.Groups.UpdateGroup(ctx, grp)
		return errors.Wrap(err, op)
	})
	if err != nil {
		return GroupDto{}, err
	}

	svc.logger.Info(fmt.Sprintf("Group with Id [%d] renamed to [%s].", grp.ID, grp.Name))
	return NewGroupDto(grp), nil
}

func (svc *GroupService) Create(ctx context.Context, dto GroupDto) (GroupDto, error) {
	const op = "GroupService.Create"
	dto.Name = core.CleanString(dto.Name)
	if err := svc.validator.CreateGroup(dto); err != nil {
		return GroupDto{}, err
	}

	var grp Group
	err := svc.uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Courses.GetCourse(ctx, dto.CourseID); err != nil {
			return svc.lookup(err, op, "course", dto.CourseID)
		}
		if err := svc.checkUniqueness(ctx, repos.Groups, op, dto.Name, 0); err != nil {
			return err
		}
		var err error
		grp, err = repos.Groups.CreateGroup(ctx, Group{Name: dto.Name, CourseID: dto.CourseID})
		return errors.Wrap(err, op)
	})
	if err != nil {
		return GroupDto{}, err
	}

	svc.logger.Info(fmt.Sprintf("Group [%s] created with Id [%d] in course [%d].", grp.Name, grp.ID, grp.CourseID))
	return NewGroupDto(grp), nil
}

// Delete fails with core.ErrReferentialIntegrity while any student belongs to the group.
func (svc *GroupService) Delete(ctx context.Context, dto GroupDto) error {
	const op = "GroupService.Delete"
	if err := svc.validator.DeleteGroup(dto); err != nil {
		return err
	}

	err := svc.uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Groups.GetGroup(ctx, dto.ID); err != nil {
			return svc.lookup(err, op, "group", dto.ID)
		}
		taken, err := repos.Students.GroupHasStudents(ctx, dto.ID)
		if err != nil {
			return errors.Wrap(err, op)
		}
		if taken {
			return svc.fail(core.ErrReferentialIntegrity, op,
				"Cannot delete group with Id [%d] as it has students assigned.", dto.ID)
		}
		return errors.Wrap(repos.Groups.DeleteGroup(ctx, dto.ID), op)
	})
	if err != nil {
		return err
	}

	svc.logger.Info(fmt.Sprintf("Group with Id [%d] deleted.", dto.ID))
	return nil
}
