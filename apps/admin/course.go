package main

import (
	"context"
	"fmt"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
)

// seed creates the default courses missing from the database, so seeding twice is harmless.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	existing, err := cli.courseSvc.GetAll(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[c.Name] = true
	}

	var created int
	for _, c := range university.DefaultCourses {
		if names[c.Name] {
			continue
		}
		if _, err = cli.courseSvc.Create(ctx, university.CourseDto{Name: c.Name}); err != nil {
			return err
		}
		created++
	}
	fmt.Fprintf(cli.out, "%d course(s) created.\n", created)
	return nil
}

func (cli *commandLine) addCourse(name string) error {
	course, err := cli.courseSvc.Create(context.Background(), university.CourseDto{Name: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Course [%s] created with Id [%d].\n", course.Name, course.ID)
	return nil
}

func (cli *commandLine) hashPassword(pwd string) error {
	hash, err := core.HashPassword(pwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Set <ENV>_STAFF_PASSWORDHASH to:\n%s\n", hash)
	return nil
}
