package university

// Unassigned is the GroupID of a Student that does not belong to any Group.
const Unassigned = 0

// DefaultCourses are the courses every new database is seeded with.
var DefaultCourses = []Course{
	{ID: 1, Name: "System Engineer"},
	{ID: 2, Name: "Software Engineer"},
	{ID: 3, Name: "Data Science"},
	{ID: 4, Name: "Data Analysis"},
	{ID: 5, Name: "Cyber Security"},
}

type Course struct {
	ID     int
	Name   string
	Groups []Group // only loaded by CourseRepository.GetCourseWithGroups
}

type Group struct {
	ID       int
	Name     string
	CourseID int
	Students []Student // only loaded by GroupRepository.GetGroupWithStudents
}

type Student struct {
	ID        int
	FirstName string
	LastName  string
	GroupID   int
	Group     *Group // only loaded by StudentRepository.QueryStudents(ctx, true)
}

func (s Student) IsAssigned() bool {
	return s.GroupID != Unassigned
}

// Transfer objects

type CourseDto struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"notblank"`
}

type GroupDto struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"notblank"`
	CourseID int    `json:"course_id"`
}

type StudentDto struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	GroupID   int    `json:"group_id"`
	GroupName string `json:"group_name,omitempty"`
}

// Mapping

func NewCourseDto(c Course) CourseDto {
	return CourseDto{ID: c.ID, Name: c.Name}
}

func NewCourseDtos(courses []Course) []CourseDto {
	dtos := make([]CourseDto, 0, len(courses))
	for _, c := range courses {
		dtos = append(dtos, NewCourseDto(c))
	}
	return dtos
}

func NewGroupDto(g Group) GroupDto {
	return GroupDto{ID: g.ID, Name: g.Name, CourseID: g.CourseID}
}

func NewGroupDtos(groups []Group) []GroupDto {
	dtos := make([]GroupDto, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, NewGroupDto(g))
	}
	return dtos
}

func NewStudentDto(s Student) StudentDto {
	dto := StudentDto{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		GroupID:   s.GroupID,
	}
	if s.Group != nil {
		dto.GroupName = s.Group.Name
	}
	return dto
}

func NewStudentDtos(students []Student) []StudentDto {
	dtos := make([]StudentDto, 0, len(students))
	for _, s := range students {
		dtos = append(dtos, NewStudentDto(s))
	}
	return dtos
}
